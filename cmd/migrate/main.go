package main

import (
	"github.com/Darekar-Ishita/Trading-website/internal/config"
	"github.com/Darekar-Ishita/Trading-website/internal/db"
)

func main() {
	cfg := config.LoadConfig()

	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db.Migrate(dsn)
}
