package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构并播种参照数据(城市/图书馆/书店)
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.L.Info().Msg("数据库连接成功")

	// 自动迁移表结构(开发环境)
	// 注意:生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	if err := seedReferenceData(db); err != nil {
		return nil, fmt.Errorf("参照数据播种失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 用户与资料
		&UserModel{},
		&AddressModel{},
		&PaymentMethodModel{},
		&FavoriteModel{},
		// 参照数据
		&CityModel{},
		&LibraryModel{},
		&StoreModel{},
		// 图书目录
		&AuthorModel{},
		&GenreModel{},
		&BookModel{},
		// 借阅(可用性账本+预约+等待队列)
		&AvailableBookModel{},
		&LoanedBookModel{},
		&ReservationModel{},
		&WaitlistModel{},
		// 书店库存与订单
		&InventoryModel{},
		&OrderModel{},
		&OrderLineModel{},
		&DeliveryModel{},
		// 通知、书评、工单
		&NotificationModel{},
		&ReviewModel{},
		&ReviewVoteModel{},
		&LibrarianRequestModel{},
	)
}

// seedReferenceData 播种默认的城市/图书馆/书店
// 幂等:城市表非空时直接跳过
func seedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&CityModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	cities := []CityModel{
		{Name: "Milano"},
		{Name: "Roma"},
		{Name: "Torino"},
	}
	if err := db.Create(&cities).Error; err != nil {
		return err
	}

	libraries := []LibraryModel{
		{Name: "Biblioteca Centrale", CityID: cities[0].ID, Address: "Via Brera 28"},
		{Name: "Biblioteca Nazionale", CityID: cities[1].ID, Address: "Viale Castro Pretorio 105"},
		{Name: "Biblioteca Civica", CityID: cities[2].ID, Address: "Via della Cittadella 5"},
	}
	if err := db.Create(&libraries).Error; err != nil {
		return err
	}

	stores := []StoreModel{
		{Name: "Libreria del Corso", CityID: cities[0].ID, Address: "Corso Buenos Aires 12"},
		{Name: "Libreria Trastevere", CityID: cities[1].ID, Address: "Via della Lungaretta 23"},
		{Name: "Libreria San Carlo", CityID: cities[2].ID, Address: "Piazza San Carlo 161"},
	}
	if err := db.Create(&stores).Error; err != nil {
		return err
	}

	logger.L.Info().Msg("参照数据播种完成")
	return nil
}
