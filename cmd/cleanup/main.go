package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/tube24/tube24_go_server/config"
	"github.com/tube24/tube24_go_server/internal/database"
	"github.com/tube24/tube24_go_server/internal/model"
	"github.com/tube24/tube24_go_server/internal/repository"
	"github.com/tube24/tube24_go_server/internal/service"
)

var (
	dryRun = flag.Bool("dry-run", true, "Dry run mode, don't actually downgrade users")
)

func main() {
	flag.Parse()

	log.Println("🧹 Starting subscription cleanup...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 连接数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	now := time.Now()

	// 统计待清理的到期订阅用户
	var due []model.User
	err = db.Where("subscription_ends_at IS NOT NULL AND subscription_ends_at <= ? AND plan <> ?",
		now, "free").Find(&due).Error
	if err != nil {
		log.Fatalf("Failed to query expired subscriptions: %v", err)
	}

	for _, user := range due {
		log.Printf("  - user %d (%s plan, expired %s ago)",
			user.ID, user.Plan, now.Sub(*user.SubscriptionEndsAt).Round(time.Hour))
	}

	downgraded := int64(len(due))
	if !*dryRun {
		subscriptionService := service.NewSubscriptionService(
			repository.NewSubscriptionRepository(db),
			repository.NewUserRepository(db),
			cfg,
		)
		downgraded, err = subscriptionService.Sweep(now)
		if err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
	}

	// 输出统计
	log.Println("\n" + strings.Repeat("=", 60))
	log.Println("📊 Cleanup Summary")
	log.Println(strings.Repeat("=", 60))
	log.Printf("Expired subscriptions: %d", len(due))
	log.Printf("Users downgraded: %d", downgraded)
	if *dryRun {
		log.Println("\n⚠️  DRY RUN MODE - No users were actually downgraded")
		log.Println("   Run with -dry-run=false to apply the downgrade")
	} else {
		log.Println("\n✅ Cleanup completed!")
	}
	log.Println(strings.Repeat("=", 60))
}
