// cmd/barcodes/main.go
// 给还没有条码的工具补发条码；已有条码的跳过，绝不覆盖。
package main

import (
	"context"
	"log"

	"toolify/config"
	"toolify/db"

	"github.com/google/uuid"
)

func main() {
	config.LoadEnv()

	conn := db.ConnectDB()
	repo := db.NewRepo(conn)
	ctx := context.Background()

	tools, err := repo.ListToolsWithoutBarcode(ctx)
	if err != nil {
		log.Fatalf("list tools: %v", err)
	}
	if len(tools) == 0 {
		log.Println("No tools without a barcode.")
		return
	}

	for _, t := range tools {
		code := uuid.NewString()
		if err := repo.AssignBarcode(ctx, t.ID, code); err != nil {
			// AssignBarcode 自带“只发一次”保护；撞上并发分配就跳过
			log.Printf("skip %q (%s): %v", t.Name, t.ID, err)
			continue
		}
		log.Printf("Assigned barcode %s to tool %q (%s)", code, t.Name, t.ID)
	}

	log.Println("All done!")
}
