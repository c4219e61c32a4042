package store

import (
	"context"
	"errors"
	"testing"

	"fincas/models"

	"gorm.io/gorm"
)

func TestProjectCreateDefaultsAndDuplicates(t *testing.T) {
	db := openTestDB(t)
	projects := NewProjectStore(db)

	project := &models.Project{
		CompanyID:           "company1",
		Name:                "Norte",
		RestDays:            models.DefaultRestDays(),
		WeeklyOvertimeLimit: models.DefaultWeeklyOvertimeLimit,
		DailyOvertimeLimit:  models.DefaultDailyOvertimeLimit,
		HourlyRate:          models.DefaultHourlyRate,
	}
	if err := projects.Create(context.Background(), project); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if project.ID == 0 {
		t.Fatal("Create did not assign an ID")
	}

	dup := &models.Project{
		CompanyID: "company1",
		Name:      "Norte",
		RestDays:  models.DefaultRestDays(),
	}
	if err := projects.Create(context.Background(), dup); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate Create error = %v, want ErrDuplicateName", err)
	}

	// The same name under another company is fine.
	otherCompany := &models.Project{
		CompanyID: "company2",
		Name:      "Norte",
		RestDays:  models.DefaultRestDays(),
	}
	if err := projects.Create(context.Background(), otherCompany); err != nil {
		t.Fatalf("Create under another company failed: %v", err)
	}
}

func TestProjectCreateRejectsBadRestDays(t *testing.T) {
	db := openTestDB(t)
	projects := NewProjectStore(db)

	project := &models.Project{
		CompanyID: "company1",
		Name:      "Norte",
		RestDays:  []int{0, 7},
	}
	if err := projects.Create(context.Background(), project); err == nil {
		t.Fatal("Create accepted a rest day outside [0,6]")
	}
}

func TestProjectUpdateRewritesConfigurableFields(t *testing.T) {
	db := openTestDB(t)
	project := seedProject(t, db, "company1", "Norte")
	projects := NewProjectStore(db)

	createdAt := project.CreatedAt

	project.Name = "Norte Renovada"
	project.RestDays = []int{6, 0, 6}
	project.WeeklyOvertimeLimit = 10
	project.DailyOvertimeLimit = 3
	project.HourlyRate = 6.5
	if err := projects.Update(context.Background(), project); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := projects.Get(context.Background(), "company1", project.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Norte Renovada" {
		t.Errorf("name = %q", got.Name)
	}
	if len(got.RestDays) != 2 || got.RestDays[0] != 0 || got.RestDays[1] != 6 {
		t.Errorf("rest days = %v, want deduplicated sorted {0,6}", got.RestDays)
	}
	if got.WeeklyOvertimeLimit != 10 || got.DailyOvertimeLimit != 3 || got.HourlyRate != 6.5 {
		t.Errorf("limits/rate = %v/%v/%v", got.WeeklyOvertimeLimit, got.DailyOvertimeLimit, got.HourlyRate)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt changed from %v to %v", createdAt, got.CreatedAt)
	}
}

func TestProjectDeleteCascadesToRecords(t *testing.T) {
	db := openTestDB(t)
	project := seedProject(t, db, "company1", "Norte")
	survivor := seedProject(t, db, "company1", "Sur")
	seedRecord(t, db, project.ID, day(1), "Ana Ruiz", "123")
	seedRecord(t, db, project.ID, day(2), "Luis Mora", "456")
	seedRecord(t, db, survivor.ID, day(1), "Rosa Paz", "789")
	projects := NewProjectStore(db)

	if err := projects.Delete(context.Background(), "company1", project.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := projects.Get(context.Background(), "company1", project.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("Get after delete error = %v, want ErrRecordNotFound", err)
	}
	if got := countRecords(t, db, project.ID); got != 0 {
		t.Errorf("%d records survived the cascade", got)
	}
	if got := countRecords(t, db, survivor.ID); got != 1 {
		t.Errorf("survivor project has %d records, want 1", got)
	}
}

func TestProjectDeleteWrongCompany(t *testing.T) {
	db := openTestDB(t)
	project := seedProject(t, db, "company1", "Norte")
	projects := NewProjectStore(db)

	if err := projects.Delete(context.Background(), "company2", project.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("Delete across companies error = %v, want ErrRecordNotFound", err)
	}
	if _, err := projects.Get(context.Background(), "company1", project.ID); err != nil {
		t.Fatalf("project was deleted across company boundary: %v", err)
	}
}
