package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/librarian/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.BorrowRecord{},
		&entities.FeePayment{},
		&entities.OverdueNotice{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedSampleData loads the demo catalog used by the `seed` subcommand.
// Idempotent: books are keyed by ISBN, the open borrow record by
// (patron, book).
func (d *Database) SeedSampleData() error {
	sampleBooks := []entities.Book{
		{Title: "Test Book", Author: "Test Author", ISBN: "1234567890123", TotalCopies: 3, AvailableCopies: 2},
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565", TotalCopies: 2, AvailableCopies: 2},
		{Title: "Harry Potter and the Philosopher's Stone", Author: "JK Rowling", ISBN: "9780747532699", TotalCopies: 4, AvailableCopies: 4},
		{Title: "1984", Author: "George Orwell", ISBN: "9780451524935", TotalCopies: 1, AvailableCopies: 0},
	}

	for _, book := range sampleBooks {
		var existing entities.Book
		result := d.DB.Where("isbn = ?", book.ISBN).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&book).Error; err != nil {
				return fmt.Errorf("failed to seed book %s: %w", book.ISBN, err)
			}
			log.Printf("Seeded book: %s", book.Title)
		}
	}

	// One outstanding loan so return/fee flows can be exercised right away.
	var testBook entities.Book
	if err := d.DB.Where("isbn = ?", "1234567890123").First(&testBook).Error; err != nil {
		return fmt.Errorf("failed to look up seeded book: %w", err)
	}

	var open entities.BorrowRecord
	result := d.DB.Where("patron_id = ? AND book_id = ? AND return_date IS NULL", "123456", testBook.ID).First(&open)
	if result.Error == gorm.ErrRecordNotFound {
		now := time.Now()
		record := entities.BorrowRecord{
			PatronID:   "123456",
			BookID:     testBook.ID,
			BorrowDate: now,
			DueDate:    now.AddDate(0, 0, 14),
		}
		if err := d.DB.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to seed borrow record: %w", err)
		}
		log.Printf("Seeded open borrow record for patron 123456")
	}

	return nil
}
