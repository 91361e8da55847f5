// Package mirror implements the best-effort remote copy of the local
// ledgers. The remote store keeps its own key scheme: patients are keyed
// by phone, appointments by (phone, date, time), revenues by date and
// coupons by code, since locally generated ids never leave the process.
package mirror

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinic-admin-server/internal/models"
)

// PatientRow is the remote patients table.
type PatientRow struct {
	ID               uint   `gorm:"primaryKey"`
	Phone            string `gorm:"size:20;uniqueIndex;not null"`
	Name             string `gorm:"size:100"`
	Email            string `gorm:"size:255"`
	BirthDate        string `gorm:"size:10"`
	RegistrationDate string `gorm:"size:10"`
	LastVisitDate    string `gorm:"size:10"`
	TotalVisits      int
	TotalSpent       int
	Status           string       `gorm:"size:20"`
	Packages         []PackageRow `gorm:"foreignKey:PatientPhone;references:Phone"`
}

// PackageRow is the remote packages table holding prepaid session bundles.
type PackageRow struct {
	ID             uint   `gorm:"primaryKey"`
	PatientPhone   string `gorm:"size:20;index"`
	ServiceID      string `gorm:"size:36"`
	TotalCount     int
	RemainingCount int
	PurchaseDate   string `gorm:"size:10"`
}

// AppointmentRow is the remote appointments table.
type AppointmentRow struct {
	ID              uint   `gorm:"primaryKey"`
	Phone           string `gorm:"size:20;uniqueIndex:idx_appt_phone_date_time"`
	Date            string `gorm:"size:10;uniqueIndex:idx_appt_phone_date_time"`
	Time            string `gorm:"size:5;uniqueIndex:idx_appt_phone_date_time"`
	PatientName     string `gorm:"size:100"`
	ServiceID       string `gorm:"size:36"`
	ServiceName     string `gorm:"size:100"`
	DurationMinutes int
	Price           int
	Status          string `gorm:"size:20"`
	PackageType     string `gorm:"size:10"`
	PaymentStatus   string `gorm:"size:10"`
	Notes           string `gorm:"type:text"`
}

// RevenueRow is the remote revenues table, keyed by date.
type RevenueRow struct {
	ID               uint   `gorm:"primaryKey"`
	Date             string `gorm:"size:10;uniqueIndex"`
	IVRevenue        int
	EndoscopyRevenue int
	TotalRevenue     int
	Details          []RevenueDetailRow `gorm:"foreignKey:Date;references:Date"`
}

// RevenueDetailRow is the remote revenue_details table.
type RevenueDetailRow struct {
	ID        uint   `gorm:"primaryKey"`
	Date      string `gorm:"size:10;index"`
	ServiceID string `gorm:"size:36"`
	Count     int
	Revenue   int
}

// CouponRow is the remote coupons table, keyed by code.
type CouponRow struct {
	ID           uint   `gorm:"primaryKey"`
	Code         string `gorm:"size:50;uniqueIndex"`
	Discount     int
	DiscountType string `gorm:"size:10"`
	MinAmount    int
	ValidFrom    string `gorm:"size:10"`
	ValidUntil   string `gorm:"size:10"`
	UsageCount   int
	MaxUsage     int
	IsActive     bool
}

// GormMirror mirrors local mutations into a MySQL schema via GORM.
type GormMirror struct {
	db *gorm.DB
}

// Connect opens the remote database and migrates the mirror schema.
func Connect(dsn string) (*GormMirror, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect mirror database: %w", err)
	}
	if err := db.AutoMigrate(
		&PatientRow{},
		&PackageRow{},
		&AppointmentRow{},
		&RevenueRow{},
		&RevenueDetailRow{},
		&CouponRow{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate mirror schema: %w", err)
	}
	return &GormMirror{db: db}, nil
}

// UpsertPatient writes a patient keyed by phone number. Package credits are
// rewritten wholesale.
func (m *GormMirror) UpsertPatient(ctx context.Context, p models.Patient) error {
	row := PatientRow{
		Phone:            p.Phone,
		Name:             p.Name,
		Email:            p.Email,
		BirthDate:        p.BirthDate,
		RegistrationDate: p.RegistrationDate,
		LastVisitDate:    p.LastVisitDate,
		TotalVisits:      p.TotalVisits,
		TotalSpent:       p.TotalSpent,
		Status:           string(p.Status),
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			UpdateAll: true,
		}).Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_phone = ?", p.Phone).Delete(&PackageRow{}).Error; err != nil {
			return err
		}
		for _, cr := range p.Packages {
			pkg := PackageRow{
				PatientPhone:   p.Phone,
				ServiceID:      cr.ServiceID,
				TotalCount:     cr.TotalCount,
				RemainingCount: cr.RemainingCount,
				PurchaseDate:   cr.PurchaseDate,
			}
			if err := tx.Create(&pkg).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertAppointment writes an appointment keyed by (phone, date, time).
func (m *GormMirror) UpsertAppointment(ctx context.Context, a models.Appointment) error {
	row := AppointmentRow{
		Phone:           a.Phone,
		Date:            a.Date,
		Time:            a.Time,
		PatientName:     a.PatientName,
		ServiceID:       a.ServiceID,
		ServiceName:     a.ServiceName,
		DurationMinutes: a.DurationMinutes,
		Price:           a.Price,
		Status:          string(a.Status),
		PackageType:     string(a.PackageType),
		PaymentStatus:   string(a.PaymentStatus),
		Notes:           a.Notes,
	}
	return m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}, {Name: "date"}, {Name: "time"}},
		UpdateAll: true,
	}).Create(&row).Error
}

// UpsertRevenue writes the daily aggregate keyed by date. Because the
// remote row is replaced rather than summed, repeated mirror writes for
// the same local record stay idempotent on the remote side.
func (m *GormMirror) UpsertRevenue(ctx context.Context, r models.Revenue) error {
	row := RevenueRow{
		Date:             r.Date,
		IVRevenue:        r.IVRevenue,
		EndoscopyRevenue: r.EndoscopyRevenue,
		TotalRevenue:     r.TotalRevenue,
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			UpdateAll: true,
		}).Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("date = ?", r.Date).Delete(&RevenueDetailRow{}).Error; err != nil {
			return err
		}
		for _, d := range r.ServiceDetails {
			detail := RevenueDetailRow{
				Date:      r.Date,
				ServiceID: d.ServiceID,
				Count:     d.Count,
				Revenue:   d.Revenue,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertCoupon writes a coupon keyed by code.
func (m *GormMirror) UpsertCoupon(ctx context.Context, c models.Coupon) error {
	row := CouponRow{
		Code:         c.Code,
		Discount:     c.Discount,
		DiscountType: string(c.DiscountType),
		MinAmount:    c.MinAmount,
		ValidFrom:    c.ValidFrom,
		ValidUntil:   c.ValidUntil,
		UsageCount:   c.UsageCount,
		MaxUsage:     c.MaxUsage,
		IsActive:     c.IsActive,
	}
	return m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		UpdateAll: true,
	}).Create(&row).Error
}
