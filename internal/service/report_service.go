package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
)

type ReportService interface {
	TopCustomersBySpend(ctx context.Context, limit int) ([]dto.CustomerSpend, error)
	PopularDishes(ctx context.Context, limit int) ([]dto.DishPopularity, error)
	DailySummary(ctx context.Context, date string) (*dto.DailySummaryResponse, error)
}

type reportService struct {
	orderRepo repository.OrderRepository
	rdb       *redis.Client
	cacheTTL  time.Duration
	location  *time.Location
}

func NewReportService(orderRepo repository.OrderRepository, rdb *redis.Client, cacheTTL time.Duration, loc *time.Location) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{orderRepo: orderRepo, rdb: rdb, cacheTTL: cacheTTL, location: loc}
}

// TopCustomersBySpend ranks customers by lifetime spend across non-cancelled
// orders. Ties break by the customer's earliest order, so the ranking is
// stable across runs.
func (s *reportService) TopCustomersBySpend(ctx context.Context, limit int) ([]dto.CustomerSpend, error) {
	if limit <= 0 {
		limit = 5
	}
	cacheKey := fmt.Sprintf("cache:report:top-customers:%d", limit)
	var cached []dto.CustomerSpend
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	orders, err := s.orderRepo.ListWithItems(ctx)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		id       string
		username string
		count    int
		spend    decimal.Decimal
		earliest time.Time
	}
	buckets := map[string]*bucket{}
	for i := range orders {
		o := &orders[i]
		if o.CustomerID == nil {
			continue
		}
		key := o.CustomerID.String()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{id: key, spend: decimal.Zero, earliest: o.CreatedAt}
			if o.Customer != nil {
				b.username = o.Customer.Username
			}
			buckets[key] = b
		}
		b.count++
		b.spend = b.spend.Add(o.Total())
		if o.CreatedAt.Before(b.earliest) {
			b.earliest = o.CreatedAt
		}
	}

	ranked := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ranked = append(ranked, b)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].spend.Equal(ranked[j].spend) {
			return ranked[i].spend.GreaterThan(ranked[j].spend)
		}
		return ranked[i].earliest.Before(ranked[j].earliest)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]dto.CustomerSpend, 0, len(ranked))
	for _, b := range ranked {
		out = append(out, dto.CustomerSpend{
			CustomerID: b.id,
			Username:   b.username,
			OrderCount: b.count,
			TotalSpend: b.spend,
		})
	}
	s.cacheSet(ctx, cacheKey, out)
	return out, nil
}

// PopularDishes counts, per menu item, the number of distinct non-cancelled
// orders it appeared in. Ties break by menu item ID ascending.
func (s *reportService) PopularDishes(ctx context.Context, limit int) ([]dto.DishPopularity, error) {
	if limit <= 0 {
		limit = 5
	}
	cacheKey := fmt.Sprintf("cache:report:popular-dishes:%d", limit)
	var cached []dto.DishPopularity
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	orders, err := s.orderRepo.ListWithItems(ctx)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		id    string
		name  string
		count int
	}
	buckets := map[string]*bucket{}
	for i := range orders {
		seen := map[string]bool{}
		for _, item := range orders[i].Items {
			key := item.MenuItemID.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			b, ok := buckets[key]
			if !ok {
				b = &bucket{id: key}
				if item.MenuItem != nil {
					b.name = item.MenuItem.Name
				}
				buckets[key] = b
			}
			b.count++
		}
	}

	ranked := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ranked = append(ranked, b)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].id < ranked[j].id
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]dto.DishPopularity, 0, len(ranked))
	for _, b := range ranked {
		out = append(out, dto.DishPopularity{
			MenuItemID:   b.id,
			Name:         b.name,
			TimesOrdered: b.count,
		})
	}
	s.cacheSet(ctx, cacheKey, out)
	return out, nil
}

// DailySummary aggregates the calendar day in the configured timezone:
// order count and exact decimal revenue across non-cancelled orders.
func (s *reportService) DailySummary(ctx context.Context, date string) (*dto.DailySummaryResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.location)
	if err != nil {
		return nil, apierror.Validation("date must be YYYY-MM-DD")
	}
	cacheKey := "cache:report:daily:" + date
	var cached dto.DailySummaryResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	from := day
	to := day.AddDate(0, 0, 1)
	orders, err := s.orderRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	count := 0
	for i := range orders {
		if orders[i].Status == model.StatusCancelled {
			continue
		}
		count++
		revenue = revenue.Add(orders[i].Total())
	}

	out := &dto.DailySummaryResponse{
		Date:         date,
		TotalOrders:  count,
		TotalRevenue: revenue,
	}
	s.cacheSet(ctx, cacheKey, out)
	return out, nil
}

func (s *reportService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.rdb == nil {
		return false
	}
	body, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(body), dest) == nil
}

func (s *reportService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return
	}
	body, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, body, s.cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}
