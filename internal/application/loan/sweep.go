package loan

import (
	"context"
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/loan"
	"github.com/xiebiao/biblioteca/pkg/logger"
	"github.com/xiebiao/biblioteca/pkg/mq"
)

// SweepReservationsUseCase 预约过期清理用例
// 过期是惰性处理的:读取路径自动触发，此用例给管理端一个显式入口
type SweepReservationsUseCase struct {
	loanService loan.Service
	publisher   *mq.Publisher
}

// NewSweepReservationsUseCase 创建清理用例
func NewSweepReservationsUseCase(loanService loan.Service, publisher *mq.Publisher) *SweepReservationsUseCase {
	return &SweepReservationsUseCase{loanService: loanService, publisher: publisher}
}

// SweepResponse 清理响应DTO
type SweepResponse struct {
	Processed int    `json:"processed"` // 处理的过期预约条数
	SweptAt   string `json:"swept_at"`
}

// Execute 执行清理
func (uc *SweepReservationsUseCase) Execute(ctx context.Context) (*SweepResponse, error) {
	now := time.Now()
	processed, err := uc.loanService.ExpireDue(ctx, now)
	if err != nil {
		return nil, err
	}

	if processed > 0 {
		logger.L.Info().Int("processed", processed).Msg("过期预约清理完成")
		uc.publisher.PublishAsync(ctx, mq.EventReservationLapsed, map[string]interface{}{
			"processed": processed,
		})
	}

	return &SweepResponse{
		Processed: processed,
		SweptAt:   now.Format("2006-01-02 15:04:05"),
	}, nil
}
