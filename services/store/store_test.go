package store

import (
	"errors"
	"io/ioutil"
	"strings"
	"testing"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/database"
	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/models"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

var (
	today     = time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	yesterday = today.AddDate(0, 0, -1)
)

func newTestStore(t *testing.T, minCalories int) *StoreService {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.Out = ioutil.Discard
	return New(db, logrus.NewEntry(logger), minCalories)
}

func saveProfile(t *testing.T, s *StoreService, userID int64, mode string) {
	t.Helper()
	err := s.SaveUser(models.User{
		UserID:      userID,
		Weight:      80,
		Height:      180,
		BodyFat:     20,
		Gender:      enums.GenderMale,
		DeficitMode: mode,
	})
	if err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
}

func TestGetUserTargets(t *testing.T) {
	s := newTestStore(t, 0)

	targets, err := s.GetUserTargets(1)
	if err != nil {
		t.Fatal(err)
	}
	if targets != DefaultTargets {
		t.Fatalf("targets without profile = %+v, want defaults", targets)
	}

	saveProfile(t, s, 1, enums.DeficitMedium)
	targets, err = s.GetUserTargets(1)
	if err != nil {
		t.Fatal(err)
	}
	if targets.Calories != 1420 || targets.Protein != 128 {
		t.Fatalf("targets = %+v, want 1420 kcal and 128 g protein", targets)
	}
}

func TestGetUserTargetsMinCalories(t *testing.T) {
	s := newTestStore(t, 1200)
	err := s.SaveUser(models.User{UserID: 5, Weight: 50, Height: 160, BodyFat: 40, Gender: enums.GenderFemale, DeficitMode: enums.DeficitExtreme})
	if err != nil {
		t.Fatal(err)
	}
	targets, err := s.GetUserTargets(5)
	if err != nil {
		t.Fatal(err)
	}
	if targets.Calories != 1200 {
		t.Fatalf("calories = %d, want floor of 1200", targets.Calories)
	}
}

func TestSaveUserUpserts(t *testing.T) {
	s := newTestStore(t, 0)
	saveProfile(t, s, 7, enums.DeficitLight)
	saveProfile(t, s, 7, enums.DeficitExtreme)

	count := 0
	s.db.Model(&models.User{}).Where("user_id = ?", 7).Count(&count)
	if count != 1 {
		t.Fatalf("users = %d, want 1", count)
	}
	user, err := s.GetUser(7)
	if err != nil {
		t.Fatal(err)
	}
	if user.DeficitMode != enums.DeficitExtreme || user.Deficit != 750 {
		t.Fatalf("user = %+v, want extreme / 750", user)
	}

	if _, err := s.GetUser(8); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GetUser(8) err = %v, want ErrUserNotFound", err)
	}
	if ok, _ := s.UserExists(8); ok {
		t.Fatal("user 8 should not exist")
	}
	if ok, _ := s.UserExists(7); !ok {
		t.Fatal("user 7 should exist")
	}
}

func TestSetDeficitMode(t *testing.T) {
	s := newTestStore(t, 0)
	saveProfile(t, s, 3, enums.DeficitMedium)

	previous, err := s.SetDeficitMode(3, enums.DeficitLight)
	if err != nil {
		t.Fatal(err)
	}
	if previous != 500 {
		t.Fatalf("previous deficit = %d, want 500", previous)
	}
	targets, _ := s.GetUserTargets(3)
	if targets.Calories != 1920 {
		t.Fatalf("calories = %d, want 1920", targets.Calories)
	}

	if _, err := s.SetDeficitMode(3, "brutal"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if _, err := s.SetDeficitMode(99, enums.DeficitLight); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestSaveWeightAndStepsOverwrite(t *testing.T) {
	s := newTestStore(t, 0)

	if err := s.SaveWeight(1, 80, today); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveWeight(1, 79.4, today); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSteps(1, 4000, today); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSteps(1, 9500, today); err != nil {
		t.Fatal(err)
	}

	var records []models.DailyRecord
	s.db.Where("user_id = ?", 1).Find(&records)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Weight == nil || *records[0].Weight != 79.4 {
		t.Fatalf("weight = %v, want 79.4", records[0].Weight)
	}
	if records[0].Steps == nil || *records[0].Steps != 9500 {
		t.Fatalf("steps = %v, want 9500", records[0].Steps)
	}

	steps, ok, err := s.GetSteps(1, today)
	if err != nil || !ok || steps != 9500 {
		t.Fatalf("GetSteps = %d, %v, %v", steps, ok, err)
	}
	if ok, _ := s.StepsExist(1, yesterday); ok {
		t.Fatal("no steps expected for yesterday")
	}
}

func TestSaveWeightMovesProfileWeight(t *testing.T) {
	s := newTestStore(t, 0)
	saveProfile(t, s, 2, enums.DeficitMedium)

	if err := s.SaveWeight(2, 78, today); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveWeight(2, 81, yesterday); err != nil {
		t.Fatal(err)
	}

	user, _ := s.GetUser(2)
	if user.Weight != 78 {
		t.Fatalf("profile weight = %v, want latest weigh-in 78", user.Weight)
	}

	last, ok, err := s.GetLastWeight(2, today)
	if err != nil || !ok || last != 81 {
		t.Fatalf("GetLastWeight = %v, %v, %v; want 81", last, ok, err)
	}
	if _, ok, _ := s.GetLastWeight(9, today); ok {
		t.Fatal("no weight expected for unknown user")
	}
}

func TestSaveWeightReportsLatestWeightFailure(t *testing.T) {
	s := newTestStore(t, 0)
	saveProfile(t, s, 3, enums.DeficitMedium)

	failure := errors.New("disk I/O error")
	s.db.Callback().Query().After("gorm:query").Register("test:fail_latest_weight", func(scope *gorm.Scope) {
		if strings.Contains(scope.SQL, "weight is not null") {
			scope.Err(failure)
		}
	})

	err := s.SaveWeight(3, 77, today)
	if !errors.Is(err, failure) {
		t.Fatalf("SaveWeight error = %v, want %v", err, failure)
	}
	if user, _ := s.GetUser(3); user.Weight != 80 {
		t.Fatalf("profile weight = %v, want 80 kept", user.Weight)
	}
}

func TestGetNutritionForDate(t *testing.T) {
	s := newTestStore(t, 0)

	if _, err := s.GetNutritionForDate(1, today); !errors.Is(err, ErrNoMeals) {
		t.Fatalf("err = %v, want ErrNoMeals", err)
	}

	meals := []models.Meal{
		{UserID: 1, Date: today.Format(enums.DateLayout), Hour: 9, Description: "каша", Calories: 300, Protein: 10, Fat: 5, Carbs: 50},
		{UserID: 1, Date: today.Format(enums.DateLayout), Hour: 14, Description: "суп", Calories: 450, Protein: 20.5, Fat: 15, Carbs: 40,
			Items: []models.MealItem{{Item: "борщ", Calories: 300}, {Item: "хлеб", Calories: 150}}},
		{UserID: 1, Date: yesterday.Format(enums.DateLayout), Hour: 20, Calories: 999},
	}
	for i := range meals {
		if err := s.SaveMeal(&meals[i]); err != nil {
			t.Fatal(err)
		}
	}

	totals, err := s.GetNutritionForDate(1, today)
	if err != nil {
		t.Fatal(err)
	}
	if totals.Calories != 750 || totals.Meals != 2 || totals.Protein != 30.5 {
		t.Fatalf("totals = %+v, want 750 kcal over 2 meals", totals)
	}

	saved, err := s.GetMeals(1, today)
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 2 || len(saved[1].Items) != 2 || saved[1].Items[0].Item != "борщ" {
		t.Fatalf("meals = %+v", saved)
	}
	if saved[0].ID == "" || saved[0].ID == saved[1].ID {
		t.Fatalf("meal ids not generated: %q %q", saved[0].ID, saved[1].ID)
	}
}

func TestHasMealBetween(t *testing.T) {
	s := newTestStore(t, 0)
	meal := models.Meal{UserID: 4, Date: today.Format(enums.DateLayout), Hour: 13, Calories: 500}
	if err := s.SaveMeal(&meal); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		from, to int
		want     bool
	}{
		{0, 10, false},
		{11, 15, true},
		{16, 22, false},
	}
	for _, tt := range tests {
		got, err := s.HasMealBetween(4, today, tt.from, tt.to)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("HasMealBetween(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestBurnedCalories(t *testing.T) {
	s := newTestStore(t, 0)

	burned, err := s.GetBurnedCalories(1, today)
	if err != nil || burned != 0 {
		t.Fatalf("GetBurnedCalories = %d, %v; want 0", burned, err)
	}
	if err := s.SaveBurnedCalories(1, 300, today); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveBurnedCalories(1, 120, today); err != nil {
		t.Fatal(err)
	}
	burned, _ = s.GetBurnedCalories(1, today)
	if burned != 120 {
		t.Fatalf("burned = %d, want 120", burned)
	}

	count := 0
	s.db.Model(&models.BurnedCalorie{}).Count(&count)
	if count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}
}

func TestListUserIDs(t *testing.T) {
	s := newTestStore(t, 0)
	saveProfile(t, s, 20, enums.DeficitLight)
	saveProfile(t, s, 10, enums.DeficitLight)

	ids, err := s.ListUserIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Fatalf("ids = %v, want [10 20]", ids)
	}
}

func TestInsertActivityLog(t *testing.T) {
	s := newTestStore(t, 0)
	if err := s.InsertActivityLog("job.daily-summary", 1, map[string]bool{"result": true}); err != nil {
		t.Fatal(err)
	}
	var entity models.ActivityLog
	if err := s.db.First(&entity).Error; err != nil {
		t.Fatal(err)
	}
	if entity.LogName != "job.daily-summary" || entity.Properties != `{"result":true}` {
		t.Fatalf("activity log = %+v", entity)
	}
}
