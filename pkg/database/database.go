package database

import (
	"fmt"

	"github.com/artemshak/tutor-platform/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database представляет подключение к базе данных
type Database struct {
	DB *gorm.DB
}

// NewDatabase создает новое подключение к PostgreSQL
func NewDatabase(dsn string) (*Database, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}

	// Автомиграция моделей
	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return database, nil
}

// Migrate выполняет миграцию базы данных
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(
		&models.User{},
		&models.Teacher{},
		&models.Student{},
		&models.Group{},
		&models.GroupMember{},
		&models.Folder{},
		&models.Lesson{},
		&models.LessonStep{},
		&models.LessonAssignment{},
		&models.LessonProgress{},
	); err != nil {
		return err
	}
	return d.partitionAssignments()
}

// partitionAssignments партиционирует таблицу назначений по teacher_id.
// Деталь хранения для масштабирования, на поведение домена не влияет.
func (d *Database) partitionAssignments() error {
	if d.DB.Dialector.Name() != "postgres" {
		return nil
	}

	var partitioned bool
	row := d.DB.Raw(
		`SELECT EXISTS (SELECT 1 FROM pg_partitioned_table pt
		 JOIN pg_class c ON c.oid = pt.partrelid
		 WHERE c.relname = 'lesson_assignments')`).Row()
	if err := row.Scan(&partitioned); err != nil || partitioned {
		return err
	}

	return d.DB.Transaction(func(tx *gorm.DB) error {
		stmts := []string{
			`ALTER TABLE lesson_assignments RENAME TO lesson_assignments_old`,
			`CREATE TABLE lesson_assignments (
				id text NOT NULL,
				teacher_id text NOT NULL REFERENCES teachers(id) ON DELETE CASCADE,
				lesson_id text NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
				student_id text REFERENCES students(id) ON DELETE CASCADE,
				group_id text,
				assigned_at timestamptz,
				deadline timestamptz,
				PRIMARY KEY (id, teacher_id)
			) PARTITION BY HASH (teacher_id)`,
		}
		for i := 0; i < 8; i++ {
			stmts = append(stmts, fmt.Sprintf(
				`CREATE TABLE lesson_assignments_p%d PARTITION OF lesson_assignments
				 FOR VALUES WITH (MODULUS 8, REMAINDER %d)`, i, i))
		}
		stmts = append(stmts,
			`INSERT INTO lesson_assignments SELECT * FROM lesson_assignments_old`,
			`DROP TABLE lesson_assignments_old`,
		)
		for _, s := range stmts {
			if err := tx.Exec(s).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Ping проверяет доступность базы данных
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close закрывает подключение к базе данных
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
