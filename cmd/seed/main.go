// cmd/seed/main.go
// 批量灌入工具目录和工地；重复执行前先清空相关表。
package main

import (
	"log"
	"os"

	"toolify/config"
	"toolify/db"
	"toolify/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type seedTool struct {
	Name     string
	Model    string
	Serial   string
	Price    float64
	Quantity int
}

var tools = []seedTool{
	{Name: "Dewalt Table Saw", Model: "DWE 7485", Serial: "Ser2021-27DU", Price: 550},
	{Name: "Ridgid Miter Saw", Model: "DWS 713", Serial: "Ser350463", Price: 450},
	{Name: "Makita Jack Hammer", Model: "HR4002", Serial: "Ser192018", Price: 700},
	{Name: "Makita Jack Hammer Heavy Duty"},
	{Name: "Dewalt Table Saw", Model: "DWE 7491", Serial: "Ser865310", Price: 500},
	{Name: "Dewalt Miter Saw", Model: "10-inch"},
	{Name: "Makita 7\" Angle Grinder", Model: "Corded", Price: 275},
	{Name: "Makita 4-1/2\" Angle Grinder", Model: "Corded", Price: 500, Quantity: 3},
	{Name: "Makita 4-1/2\" Angle Grinder", Model: "Battery", Price: 400, Quantity: 2},
	{Name: "Bosch Laser", Serial: "Ser132015313", Price: 250},
	{Name: "Makita Multitool", Model: "TM3010C", Serial: "Ser366581", Price: 140},
	{Name: "Makita 3/4\" Hammer Drill", Model: "HP2050", Price: 175},
	{Name: "Makita Compact Screw Driver Drills", Model: "Battery Powered", Price: 1300, Quantity: 4},
	{Name: "Bosch Jigsaw", Model: "JS470E", Price: 175},
	{Name: "Ridgid Mud Mixer", Model: "R7122VN", Serial: "NC21434N679658", Price: 179},
	{Name: "Bosch Jack Hammer"},
	{Name: "Ridgid Wet Tile Saw", Model: "5700 rpm", Serial: "cs19132dk10137", Price: 600},
	{Name: "Air Compressor Dewalt", Price: 150},
	{Name: "Circular Saw", Model: "Corded and Battery", Price: 160},
	{Name: "Drywall Sander with Vacuum", Model: "ZL225-CL", Price: 300},
	{Name: "Floor Sander", Price: 900},
	{Name: "8-ft Ladder", Price: 300, Quantity: 5},
	{Name: "22-ft Extension Ladder", Price: 1000, Quantity: 4},
	{Name: "Makita Recipro Saw", Model: "JR3051T"},
	{Name: "Milwaukee Roofing Nailer", Serial: "G99A9", Price: 240},
	{Name: "Rotary Hammer", Model: "HR2641H1", Price: 275},
	{Name: "Champion Generator", Model: "8000 Watts Dual Fuel", Price: 975},
}

var jobSites = []models.JobSite{
	{Name: "Main Street Remodel", Location: "142 Main St", Supervisor: "R. Alvarez"},
	{Name: "Warehouse Build-Out", Location: "9 Industrial Pkwy", Supervisor: "T. Nguyen"},
	{Name: "Lakeside Duplex", Location: "77 Lakeside Dr", Supervisor: "M. Carter"},
}

func main() {
	config.LoadEnv()

	conn := db.ConnectDB()

	// 先清空，顺序避免外键问题（目前无外键，照旧保险）
	log.Println("Cleaning old data...")
	conn.Exec("DELETE FROM " + models.NotificationTable)
	conn.Exec("DELETE FROM " + models.CheckOutHistoryTable)
	conn.Exec("DELETE FROM " + models.CheckInHistoryTable)
	conn.Exec("DELETE FROM " + models.RemovedToolTable)
	conn.Exec("DELETE FROM " + models.ToolTable)
	conn.Exec("DELETE FROM " + models.JobSiteTable)

	log.Println("Creating tools...")
	for _, st := range tools {
		qty := st.Quantity
		if qty < 1 {
			qty = 1
		}
		code := uuid.NewString()
		t := models.Tool{
			ID:           uuid.NewString(),
			Name:         st.Name,
			Model:        st.Model,
			SerialNumber: st.Serial,
			Quantity:     qty,
			Price:        st.Price,
			Status:       models.StatusAvailable,
			Barcode:      &code,
		}
		if err := conn.Create(&t).Error; err != nil {
			log.Fatalf("seed tool %q: %v", st.Name, err)
		}
		log.Printf("Tool %s added (barcode %s)", t.Name, code)
	}

	log.Println("Creating job sites...")
	for i := range jobSites {
		jobSites[i].ID = uuid.NewString()
		if err := conn.Create(&jobSites[i]).Error; err != nil {
			log.Fatalf("seed job site %q: %v", jobSites[i].Name, err)
		}
	}

	// 可选：建一个初始管理员（SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD）
	if email := os.Getenv("SEED_ADMIN_EMAIL"); email != "" {
		pwd := os.Getenv("SEED_ADMIN_PASSWORD")
		if pwd == "" {
			log.Fatal("SEED_ADMIN_PASSWORD is required with SEED_ADMIN_EMAIL")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash admin password: %v", err)
		}
		admin := models.User{
			ID:           uuid.NewString(),
			Email:        email,
			FullName:     "Administrator",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}
		if err := conn.Create(&admin).Error; err != nil {
			log.Fatalf("seed admin: %v", err)
		}
		log.Printf("Admin %s created", email)
	}

	log.Println("All data has been seeded successfully.")
}
