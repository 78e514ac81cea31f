package main

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/xiebiao/biblioteca/internal/domain/transaction"
	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/biblioteca/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/biblioteca/pkg/jwt"
	"github.com/xiebiao/biblioteca/pkg/mq"
)

// Wire自定义Provider
// 构造参数需要从Config中提取、或返回值需要绑定到接口的依赖，在这里手写Provider

// provideTxManager 事务管理器(绑定到domain的transaction.Manager接口)
func provideTxManager(db *gorm.DB) transaction.Manager {
	return mysql.NewTxManager(db)
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// providePublisher 创建事件发布者
// MQ未配置时返回nil，Publisher对nil接收者安全，事件发布静默跳过
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	if cfg.MQ.URL == "" {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}
