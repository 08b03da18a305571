package main

import (
	"context"
	"log"
	"os"
	"strings"

	"communehub/internal/handler"
	"communehub/internal/model"
	"communehub/internal/pkg"
	"communehub/internal/repository/mysql"
	"communehub/internal/repository/redis"
	"communehub/internal/router"
	"communehub/internal/service"
)

func main() {
	dsn := envOr("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/communehub?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	if err := redis.Init(envOr("REDIS_ADDR", "127.0.0.1:6379"), os.Getenv("REDIS_PASSWORD"), 0); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.CommunityPaymentMethod{},
		&model.Membership{},
		&model.Post{},
		&model.PostLike{},
		&model.PostComment{},
		&model.PostShare{},
		&model.PostView{},
		&model.EngagementOutbox{},
	)

	userRepo := &mysql.UserRepository{DB: mysql.DB}
	communityRepo := &mysql.CommunityRepository{DB: mysql.DB}
	postRepo := &mysql.PostRepository{DB: mysql.DB}
	membershipRepo := &mysql.MembershipRepository{DB: mysql.DB}
	engagementRepo := &mysql.EngagementRepository{DB: mysql.DB}
	outboxRepo := &mysql.OutboxRepository{DB: mysql.DB}
	cache := redis.NewEngagementCacheRepository()

	resolver := service.NewPersonalizationResolver(userRepo, membershipRepo)
	aggregator := service.NewEngagementAggregator(postRepo, cache)
	rankingSvc := service.NewRankingService(postRepo, communityRepo, engagementRepo, aggregator, resolver)
	suggestionSvc := service.NewSuggestionService(communityRepo, membershipRepo, userRepo)
	membershipSvc := service.NewMembershipService(membershipRepo, communityRepo, userRepo)
	engagementSvc := service.NewEngagementService(engagementRepo, postRepo, membershipRepo, cache)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 事件投递：配置了 kafka 就走 kafka，否则降级为日志输出
	sender := service.LogSender
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer := pkg.NewProducer(strings.Split(brokers, ","), envOr("KAFKA_TOPIC", "engagement-events"))
		defer producer.Close()
		sender = func(ctx context.Context, ob *model.EngagementOutbox) error {
			return producer.Publish(ctx, ob.PostID, []byte(ob.Payload))
		}
	}
	go service.NewOutboxRelayer(outboxRepo, sender).Run(ctx)
	go service.NewCounterReconciler(engagementRepo, cache).Run(ctx)

	r := router.InitRouter(router.Handlers{
		Ranking:    handler.NewRankingHandler(rankingSvc, suggestionSvc),
		Membership: handler.NewMembershipHandler(membershipSvc),
		Engagement: handler.NewEngagementHandler(engagementSvc),
	})
	if err := r.Run(envOr("HTTP_ADDR", ":8080")); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
