package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv 读 .env；没有也不报错（容器里变量直接注入）
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment as-is")
	}
}
