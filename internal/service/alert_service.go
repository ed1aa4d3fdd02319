package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Notifier delivers an alert to the store administrator.
type Notifier interface {
	Notify(ctx context.Context, subject string, body string) (err error)
}

type AlertServiceImpl struct {
	products ProductService
	notifier Notifier
}

// CreateAlertService builds the low stock alert job. notifier may be nil, in
// which case alerts are only logged.
func CreateAlertService(products ProductService, notifier Notifier) AlertService {
	return &AlertServiceImpl{products: products, notifier: notifier}
}

func (s *AlertServiceImpl) NotifyLowStock(ctx context.Context) (err error) {
	products, err := s.products.GetLowStockProducts(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "NotifyLowStock").Msg("")
		return
	}

	log.Ctx(ctx).Info().Str("component", "NotifyLowStock").Int("count", len(products)).Msg("low stock check finished")

	if len(products) == 0 || s.notifier == nil {
		return nil
	}

	var body strings.Builder
	body.WriteString("<p>The following products are running low:</p><ul>")
	for _, p := range products {
		fmt.Fprintf(&body, "<li>%s (%s): %d left, alert at %d</li>", p.Title, p.Code, p.Stock, p.StockAlert)
	}
	body.WriteString("</ul>")

	subject := fmt.Sprintf("%d products are low on stock", len(products))
	if err = s.notifier.Notify(ctx, subject, body.String()); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "NotifyLowStock").Msg("failed to send alert")
	}

	return
}
