package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/artemshak/tutor-platform/internal/config"
	"github.com/artemshak/tutor-platform/internal/repository"
	"github.com/artemshak/tutor-platform/internal/services"
	"github.com/artemshak/tutor-platform/pkg/database"

	"github.com/spf13/pflag"
)

const usage = `Usage: manage <command> [flags]

Commands:
  create-admin   создать суперпользователя
  migrate        выполнить миграции базы данных
  health         проверить подключение к базе данных
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDatabase(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "create-admin":
		createAdmin(cfg, db, os.Args[2:])
	case "migrate":
		if err := db.Migrate(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("Миграции выполнены")
	case "health":
		if err := db.Ping(); err != nil {
			log.Fatalf("Database ping failed: %v", err)
		}
		fmt.Println("База данных доступна")
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func createAdmin(cfg *config.Config, db *database.Database, args []string) {
	flags := pflag.NewFlagSet("create-admin", pflag.ExitOnError)
	email := flags.String("email", "", "почта суперпользователя")
	password := flags.String("password", "", "пароль")
	name := flags.String("name", "Admin", "имя")
	surname := flags.String("surname", "Admin", "фамилия")
	secondName := flags.String("second-name", "", "отчество")
	birthday := flags.String("birthday", "", "дата рождения в формате 2006-01-02")
	if err := flags.Parse(args); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	if *email == "" || *password == "" {
		log.Fatal("--email и --password обязательны")
	}

	userRepo := repository.NewUserRepository(db.DB)
	authService := services.NewAuthService(userRepo, cfg.SecretKey, cfg.Algorithm, cfg.TokenTTL())

	input := services.NewUserInput{
		Email:      *email,
		Password:   *password,
		Name:       *name,
		Surname:    *surname,
		SecondName: optional(*secondName),
	}
	if *birthday != "" {
		parsed, err := time.Parse("2006-01-02", *birthday)
		if err != nil {
			log.Fatalf("Invalid birthday: %v", err)
		}
		input.Birthday = &parsed
	}

	user, err := authService.CreateAdmin(input)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	fmt.Printf("Суперпользователь создан: %s (%s)\n", user.Email, user.ID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
