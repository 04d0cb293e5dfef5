package main

import (
	"context"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"magicwrites/internal/core/config"
	"magicwrites/internal/core/database"
	"magicwrites/internal/core/logger"
	"magicwrites/internal/domain"
	"magicwrites/internal/repo"
	"magicwrites/internal/service"
	"magicwrites/pkg/utils"
)

const founderBio = "Founder of MagicWrites. Creating a safe space for writers to express themselves without judgment. Welcome to our sanctuary."

const welcomeContent = `Dear Writers,

Welcome to MagicWrites, a sanctuary for creative expression.

This platform was born from a simple belief: every writer deserves a space where their words can breathe freely, without the weight of judgment or comparison.

Here, you won't find follower counts, popularity metrics, or competitive rankings. What you will find is a community that celebrates the act of writing itself.

Write freely. Write honestly. Write magically.

With love and light,
Pari Meena
Founder, MagicWrites`

type sampleWriting struct {
	title   string
	content string
	genre   string
	mood    string
}

var samples = []sampleWriting{
	{
		title: "Midnight Thoughts",
		content: `The clock strikes twelve, and the world grows quiet.
In this silence, my thoughts become poetry.

This is my midnight confession:
I write not to be understood,
But to understand myself.`,
		genre: "Poetry",
		mood:  "Reflective",
	},
	{
		title: "The Writer's Journey",
		content: `Every writer begins somewhere. The journey is never linear. It's filled with false starts and brilliant breakthroughs, with doubt and determination dancing an eternal tango.

We write because we must. This journey is uniquely yours. Honor it. Embrace it. Trust it.`,
		genre: "Essay",
		mood:  "Inspiring",
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 创始人密码只从环境变量来，不进代码库
	founderPassword := os.Getenv("APP_FOUNDER_PASSWORD")
	if founderPassword == "" {
		log.Fatal("APP_FOUNDER_PASSWORD is required")
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Writing{}, &domain.Like{}, &domain.Reflection{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := repo.NewUserRepo(db)
	writings := repo.NewWritingRepo(db)
	writingSvc := service.NewWritingService(writings, nil, 0)

	// 创始人账号（已存在就跳过）
	founder, err := users.FindByEmail(ctx, "pari@magicwrites.com")
	if err != nil {
		log.Fatal("lookup founder", zap.Error(err))
	}
	if founder == nil {
		founder = &domain.User{
			ID:           utils.NewID(),
			Email:        "pari@magicwrites.com",
			Username:     "parimeena",
			Name:         "Pari Meena",
			PasswordHash: utils.HashPassword(founderPassword),
			Bio:          founderBio,
			IsFounder:    true,
		}
		if err := users.Create(ctx, founder); err != nil {
			log.Fatal("create founder", zap.Error(err))
		}
		log.Info("created founder", zap.String("username", founder.Username))
	} else {
		log.Info("founder exists, skipping")
	}

	// 欢迎文 + 示例内容（按 slug 幂等）
	seedWriting(ctx, log, writings, writingSvc, founder.ID, sampleWriting{
		title:   "Welcome to MagicWrites",
		content: welcomeContent,
		genre:   "Essay",
		mood:    "Hopeful",
	})
	for _, s := range samples {
		seedWriting(ctx, log, writings, writingSvc, founder.ID, s)
	}

	log.Info("seeding completed")
}

func seedWriting(ctx context.Context, log *zap.Logger, writings domain.WritingRepository, svc *service.WritingService, authorID string, s sampleWriting) {
	slug := utils.Slugify(s.title)
	if existing, err := writings.FindBySlug(ctx, slug); err != nil {
		log.Fatal("lookup writing", zap.String("slug", slug), zap.Error(err))
	} else if existing != nil {
		log.Info("writing exists, skipping", zap.String("slug", slug))
		return
	}
	w, err := svc.Publish(ctx, service.PublishInput{
		AuthorID: authorID,
		Title:    s.title,
		Content:  s.content,
		Genre:    s.genre,
		Mood:     s.mood,
	})
	if err != nil {
		log.Fatal("seed writing", zap.String("title", s.title), zap.Error(err))
	}
	log.Info("created writing", zap.String("slug", w.Slug))
}
