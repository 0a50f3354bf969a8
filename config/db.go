package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"motel-backoffice/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "motel_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures the protected default reservation type and the
// chatbot's standard message templates exist. Idempotent.
func SeedDatabase() {
	var typeCount int64
	DB.Model(&models.ReservationType{}).Count(&typeCount)
	if typeCount == 0 {
		def := models.ReservationType{
			ID:    models.DefaultReservationTypeID,
			Name:  "기본",
			Color: "#9e9e9e",
		}
		extras := []models.ReservationType{
			{Name: "전화", Color: "#2196f3"},
			{Name: "OTA", Color: "#ff9800"},
		}
		if err := DB.Create(&def).Error; err != nil {
			log.Printf("warning: failed to seed default reservation type: %v", err)
		} else if err := DB.Create(&extras).Error; err != nil {
			log.Printf("warning: failed to seed reservation types: %v", err)
		} else {
			log.Println("Reservation types seeded")
		}
	}

	var msgCount int64
	DB.Model(&models.ChatbotMessage{}).Count(&msgCount)
	if msgCount == 0 {
		messages := []models.ChatbotMessage{
			{Situation: models.SituationGreeting, Message: "안녕하세요! 무엇을 도와드릴까요?\n아래 버튼으로 예약을 시작할 수 있어요."},
			{Situation: models.SituationAskPhone, Message: "예약자분의 휴대폰 번호를 입력해 주세요.\n(예: 010-1234-5678)"},
			{Situation: models.SituationPhoneFormatError, Message: "휴대폰 번호 형식이 올바르지 않습니다.\n다시 입력해 주세요."},
			{Situation: models.SituationRequested, Message: "예약 요청이 접수되었습니다.\n확정되면 알림으로 알려드릴게요!"},
			{Situation: models.SituationPendingCancelled, Message: "진행 중이던 예약이 취소되었습니다."},
			{Situation: models.SituationNoRooms, Message: "죄송합니다. 해당 날짜에는 예약 가능한 객실이 없습니다."},
			{Situation: models.SituationHistoryEmpty, Message: "예약 내역이 없습니다."},
		}
		if err := DB.Create(&messages).Error; err != nil {
			log.Printf("warning: failed to seed chatbot messages: %v", err)
		} else {
			log.Println("Chatbot messages seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Room{},
		&models.ReservationType{},
		&models.Customer{},
		&models.Reservation{},
		&models.RoomInventoryAdjustment{},
		&models.PendingReservation{},
		&models.ChatbotMessage{},
		&models.ChatHistory{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
