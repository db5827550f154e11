package main

import (
	"context"
	"fmt"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"go.uber.org/zap"
)

type sampleProduct struct {
	name          string
	category      string
	quantity      int
	minStockLevel int
	price         float64
}

var sampleProducts = []sampleProduct{
	{"노트북", "전자제품", 50, 10, 1500000},
	{"마우스", "전자제품", 5, 20, 30000},
	{"키보드", "전자제품", 8, 15, 80000},
	{"모니터", "전자제품", 0, 5, 300000},
	{"의자", "가구", 25, 10, 200000},
	{"책상", "가구", 15, 10, 350000},
	{"노트", "문구", 100, 50, 3000},
	{"펜", "문구", 200, 100, 1500},
}

type sampleEmployee struct {
	name       string
	email      string
	hireDate   string
	salary     float64
	department string
}

var sampleEmployees = []sampleEmployee{
	{"김철수", "kim@staffsync.com", "2020-01-15", 50000000, "개발팀"},
	{"이영희", "lee@staffsync.com", "2021-03-20", 45000000, "디자인팀"},
	{"박민수", "park@staffsync.com", "2019-07-10", 60000000, "개발팀"},
	{"최지은", "choi@staffsync.com", "2022-05-01", 40000000, "마케팅팀"},
	{"정대호", "jung@staffsync.com", "2018-11-30", 70000000, "인사팀"},
}

// seedProducts stores the sample inventory when no product exists yet.
func seedProducts(ctx context.Context, repo repositories.ProductRepository, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, s := range sampleProducts {
		product, err := models.NewProduct(s.name, s.category, s.quantity, s.minStockLevel, s.price)
		if err != nil {
			return fmt.Errorf("sample product %s: %w", s.name, err)
		}
		if err := repo.Create(ctx, product); err != nil {
			return err
		}
	}
	logger.Info("seeded sample products", zap.Int("count", len(sampleProducts)))
	return nil
}

// seedEmployees stores the sample staff (EMP001 to EMP005) when no employee exists yet.
func seedEmployees(ctx context.Context, repo repositories.EmployeeRepository, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i, s := range sampleEmployees {
		hireDate, err := time.Parse(models.HireDateLayout, s.hireDate)
		if err != nil {
			return err
		}
		employee, err := models.NewEmployee(i+1, s.name, s.email, hireDate, s.salary, s.department)
		if err != nil {
			return fmt.Errorf("sample employee %s: %w", s.name, err)
		}
		if err := repo.Create(ctx, employee); err != nil {
			return err
		}
	}
	logger.Info("seeded sample employees", zap.Int("count", len(sampleEmployees)))
	return nil
}
