package conversation

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/database"
	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/models"
	"github.com/AliaksandrTarashkevich/ppianieal/services/food"
	"github.com/AliaksandrTarashkevich/ppianieal/services/session"
	"github.com/AliaksandrTarashkevich/ppianieal/services/store"
	"github.com/AliaksandrTarashkevich/ppianieal/services/summary"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/sirupsen/logrus"
)

const (
	testUser     int64 = 42
	testOperator int64 = 1
)

type fakeMessenger struct {
	mu   sync.Mutex
	sent []structs.OutgoingMessage
}

func (f *fakeMessenger) Send(ctx context.Context, msg structs.OutgoingMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMessenger) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	return []byte("photo:" + fileID), nil
}

func (f *fakeMessenger) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
}

func (f *fakeMessenger) all() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	texts := make([]string, 0, len(f.sent))
	for _, msg := range f.sent {
		texts = append(texts, msg.Text)
	}
	return strings.Join(texts, "\n---\n")
}

func (f *fakeMessenger) last() structs.OutgoingMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return structs.OutgoingMessage{}
	}
	return f.sent[len(f.sent)-1]
}

type fakeAnalyzer struct {
	analysis *structs.FoodAnalysis
	err      error
	panics   bool
	calls    int
	image    []byte
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, description string, image []byte) (*structs.FoodAnalysis, error) {
	f.calls++
	f.image = image
	if f.panics {
		panic("analyzer exploded")
	}
	return f.analysis, f.err
}

type fakeScheduler struct {
	registered []int64
}

func (f *fakeScheduler) Register(userID int64) error {
	f.registered = append(f.registered, userID)
	return nil
}

type harness struct {
	t         *testing.T
	dialog    *Dialog
	messenger *fakeMessenger
	store     *store.StoreService
	sessions  *session.MemoryStore
	analyzer  *fakeAnalyzer
	scheduler *fakeScheduler
	now       time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.Out = ioutil.Discard
	entry := logrus.NewEntry(logger)

	h := &harness{
		t:         t,
		messenger: &fakeMessenger{},
		store:     store.New(db, entry, 0),
		sessions:  session.NewMemoryStore(),
		analyzer:  &fakeAnalyzer{},
		scheduler: &fakeScheduler{},
		now:       time.Date(2024, 3, 12, 12, 30, 0, 0, time.UTC),
	}
	h.dialog = New(Deps{
		Messenger: h.messenger,
		Sessions:  h.sessions,
		Store:     h.store,
		Analyzer:  h.analyzer,
		Reporter:  summary.New(h.store, enums.DefaultStepsCoeff),
		Scheduler: h.scheduler,
	}, Options{
		Location:         time.UTC,
		ActiveHoursStart: 8,
		ActiveHoursEnd:   21,
		OperatorID:       testOperator,
		Now:              func() time.Time { return h.now },
	}, entry)
	return h
}

func (h *harness) text(text string) {
	h.dialog.Handle(context.Background(), structs.IncomingMessage{UserID: testUser, ChatID: testUser, Text: text})
}

func (h *harness) command(command, args string) {
	h.dialog.Handle(context.Background(), structs.IncomingMessage{
		UserID: testUser, ChatID: testUser, Text: "/" + command + " " + args, Command: command, CommandArgs: args,
	})
}

func (h *harness) photo(caption string) {
	h.dialog.Handle(context.Background(), structs.IncomingMessage{UserID: testUser, ChatID: testUser, Caption: caption, PhotoFileID: "file-1"})
}

func (h *harness) expectState(want State) {
	h.t.Helper()
	sess, _ := h.sessions.Get(context.Background(), testUser)
	if got := parseState(sess.State); got != want {
		h.t.Fatalf("state = %s, want %s", got, want)
	}
}

func (h *harness) expectReply(substr string) {
	h.t.Helper()
	if all := h.messenger.all(); !strings.Contains(all, substr) {
		h.t.Fatalf("no reply containing %q in:\n%s", substr, all)
	}
}

func (h *harness) register() {
	h.t.Helper()
	err := h.store.SaveUser(models.User{UserID: testUser, Weight: 80, Height: 180, BodyFat: 20, Gender: enums.GenderMale, DeficitMode: enums.DeficitMedium})
	if err != nil {
		h.t.Fatal(err)
	}
}

func TestOnboarding(t *testing.T) {
	h := newHarness(t)

	h.command("start", "")
	h.expectState(StateAskWeight)
	h.expectReply("Сколько ты сейчас весишь")

	steps := []struct {
		input string
		state State
		reply string
	}{
		{"восемьдесят", StateAskWeight, msgEnterWeight},
		{"80", StateAskHeight, msgAskHeight},
		{"180.5", StateAskHeight, msgEnterHeight},
		{"180", StateAskGender, msgAskGender},
		{"кот", StateAskGender, msgPickGender},
		{ButtonMale, StateAskBodyFat, msgAskBodyFat},
		{"60", StateAskBodyFat, msgBodyFatRange},
		{"20", StateAskDeficitMode, "Выбери режим похудения"},
		{"средний-пресредний", StateAskDeficitMode, msgPickMode},
		{ButtonMedium, StateConfirmInstructions, msgReadInstructions},
		{"ок", StateConfirmInstructions, msgPressConfirm},
		{ButtonConfirm, StateIdle, msgReady},
	}
	for _, step := range steps {
		h.messenger.reset()
		h.text(step.input)
		h.expectState(step.state)
		h.expectReply(step.reply)
	}

	targets, err := h.store.GetUserTargets(testUser)
	if err != nil {
		t.Fatal(err)
	}
	if targets.Calories != 1420 || targets.Protein != 128 {
		t.Fatalf("targets = %+v, want 1420 kcal / 128 g protein", targets)
	}
	user, _ := h.store.GetUser(testUser)
	if user.Gender != enums.GenderMale || user.Height != 180 || user.DeficitMode != enums.DeficitMedium {
		t.Fatalf("profile = %+v", user)
	}
	if len(h.scheduler.registered) != 1 || h.scheduler.registered[0] != testUser {
		t.Fatalf("registered = %v, want [%d]", h.scheduler.registered, testUser)
	}
	if h.messenger.last().Keyboard == nil || h.messenger.last().Keyboard.Rows[0][0] != ButtonTrackWeight {
		t.Fatal("main keyboard not shown after onboarding")
	}
}

func TestStartKnownUser(t *testing.T) {
	h := newHarness(t)
	h.register()

	h.command("start", "")
	h.expectState(StateIdle)
	h.expectReply(msgGreeting)
}

func TestPhotoDuringOnboarding(t *testing.T) {
	h := newHarness(t)
	h.command("start", "")
	h.photo("борщ")

	h.expectState(StateAskWeight)
	h.expectReply(msgFinishProfile)
	if h.analyzer.calls != 0 {
		t.Fatal("photo analyzed during onboarding")
	}
}

func TestWeightMenu(t *testing.T) {
	h := newHarness(t)
	h.register()

	h.text(ButtonTrackWeight)
	h.expectState(StateWeightMenu)
	h.text("завтра")
	h.expectState(StateWeightMenu)
	h.expectReply(msgUseMenu)

	h.text(ButtonYesterday)
	h.expectState(StateInputWeight)
	h.text("много")
	h.expectState(StateInputWeight)
	h.expectReply(msgEnterWeight)

	h.text("81,5")
	h.expectState(StateIdle)
	h.expectReply("⚖️ Вес 81.5 кг сохранён (вчера).")

	h.messenger.reset()
	h.text("вес 80")
	h.expectReply("📉 Вес 80 кг сохранён (сегодня).")

	last, ok, _ := h.store.GetLastWeight(testUser, h.now)
	if !ok || last != 81.5 {
		t.Fatalf("yesterday's weight = %v, %v; want 81.5", last, ok)
	}
	user, _ := h.store.GetUser(testUser)
	if user.Weight != 80 {
		t.Fatalf("profile weight = %v, want 80", user.Weight)
	}
}

func TestWeightMenuBack(t *testing.T) {
	h := newHarness(t)
	h.text(ButtonTrackSteps)
	h.text(ButtonBack)
	h.expectState(StateIdle)
	h.expectReply(msgChooseAction)
}

func TestStepsYesterdaySendsSummary(t *testing.T) {
	h := newHarness(t)
	h.register()

	h.text(ButtonTrackSteps)
	h.text(ButtonYesterday)
	h.expectState(StateInputSteps)
	h.text("-100")
	h.expectState(StateInputSteps)
	h.expectReply(msgEnterSteps)

	h.text("12000")
	h.expectState(StateIdle)
	h.expectReply("👍 Шаги за вчера сохранены: 12000.")
	h.expectReply("*Итоги за 11.03:*")
	h.expectReply("Шаги: 12,000")
}

func TestStepsMenuAndFreeTextShareBehavior(t *testing.T) {
	menu := newHarness(t)
	menu.text(ButtonTrackSteps)
	menu.text(ButtonToday)
	menu.text("5000")

	free := newHarness(t)
	free.text("шаги 5000")

	slash := newHarness(t)
	slash.command("track", "шаги 5000")

	for name, h := range map[string]*harness{"menu": menu, "free text": free, "/track": slash} {
		if got := h.messenger.last().Text; got != "👍 Шаги за сегодня сохранены: 5000." {
			t.Errorf("%s reply = %q", name, got)
		}
		steps, ok, err := h.store.GetSteps(testUser, h.now)
		if err != nil || !ok || steps != 5000 {
			t.Errorf("%s stored steps = %d, %v, %v", name, steps, ok, err)
		}
	}
}

func TestTrackCommandUsage(t *testing.T) {
	h := newHarness(t)
	h.command("track", "пробежка 5км")
	h.expectReply(msgTrackUsage)
}

func TestBurn(t *testing.T) {
	h := newHarness(t)
	h.register()

	h.text(ButtonBurn)
	h.expectState(StateInputBurn)
	h.text("много")
	h.expectState(StateInputBurn)
	h.text("250")
	h.expectState(StateIdle)
	h.expectReply("🔥 Учтено 250 ккал дополнительной активности")

	burned, _ := h.store.GetBurnedCalories(testUser, h.now)
	if burned != 250 {
		t.Fatalf("burned = %d, want 250", burned)
	}
}

func TestChangeDeficitMode(t *testing.T) {
	h := newHarness(t)
	h.register()

	h.text(ButtonMode)
	h.expectState(StateChangeDeficitMode)
	h.text("🟢 Лёгкий")
	h.expectState(StateIdle)
	h.expectReply("Новая норма калорий: 1920 ккал")
	h.expectReply("(было 500 ккал дефицита, стало 0 ккал)")
}

func TestChangeDeficitModeWithoutProfile(t *testing.T) {
	h := newHarness(t)
	h.command("mode", "")
	h.text("Экстремальный")
	h.expectState(StateIdle)
	h.expectReply(msgNeedProfile)
}

func TestSummaryCommands(t *testing.T) {
	h := newHarness(t)
	h.register()

	h.text("итоги")
	h.expectReply("Нет записей по еде")
	h.messenger.reset()
	h.command("summary", "")
	h.expectReply("*Итоги за 12.03:*")
	if !h.messenger.last().Markdown {
		t.Fatal("summary must be sent as Markdown")
	}
}

func TestPhotoAnalysis(t *testing.T) {
	h := newHarness(t)
	h.register()
	h.analyzer.analysis = &structs.FoodAnalysis{
		Total: structs.FoodNutrients{Calories: 500, Protein: 44, Fat: 7.5, Carbs: 50},
		Breakdown: []structs.FoodNutrients{
			{Item: "гречка_80г", Calories: 250, Protein: 9, Fat: 2.5, Carbs: 50},
			{Item: "курица 200г", Calories: 250, Protein: 35, Fat: 5},
		},
	}

	h.photo("гречка 80г, курица 200г")
	h.expectReply(msgAnalyzing)
	h.expectReply("- гречка\\_80г: 250 ккал")
	h.expectReply("*Итого:* 500 ккал")
	if string(h.analyzer.image) != "photo:file-1" {
		t.Fatalf("analyzer got image %q", h.analyzer.image)
	}

	totals, err := h.store.GetNutritionForDate(testUser, h.now)
	if err != nil {
		t.Fatal(err)
	}
	if totals.Calories != 500 {
		t.Fatalf("stored calories = %d, want 500", totals.Calories)
	}
	meals, _ := h.store.GetMeals(testUser, h.now)
	if len(meals) != 1 || meals[0].Hour != 12 || len(meals[0].Items) != 2 {
		t.Fatalf("meals = %+v", meals)
	}
}

func TestPhotoOutsideActiveHours(t *testing.T) {
	h := newHarness(t)
	h.now = time.Date(2024, 3, 12, 21, 0, 0, 0, time.UTC)

	h.photo("ночной перекус")
	h.expectReply("с 08:00 до 21:00")
	if h.analyzer.calls != 0 {
		t.Fatal("photo analyzed outside active hours")
	}
}

func TestPhotoAnalysisUnavailable(t *testing.T) {
	h := newHarness(t)
	h.analyzer.err = fmt.Errorf("%w: timeout", food.ErrAnalysisUnavailable)

	h.photo("суп")
	h.expectReply(msgAnalysisFailed)
	if _, err := h.store.GetNutritionForDate(testUser, h.now); !errors.Is(err, store.ErrNoMeals) {
		t.Fatalf("meal stored after failed analysis: %v", err)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	h := newHarness(t)
	h.analyzer.panics = true

	h.photo("суп")
	h.expectReply(msgGenericError)

	operatorNotified := false
	for _, msg := range h.messenger.sent {
		if msg.ChatID == testOperator && strings.Contains(msg.Text, "analyzer exploded") {
			operatorNotified = true
		}
	}
	if !operatorNotified {
		t.Fatal("operator not notified about the panic")
	}
}

func TestUnknownTextInIdle(t *testing.T) {
	h := newHarness(t)
	h.text("привет")
	h.expectState(StateIdle)
	h.expectReply(msgIdleHint)
}

func TestNonDecimalNumbersArePrompted(t *testing.T) {
	h := newHarness(t)
	h.command("start", "")
	for _, input := range []string{"80", "180", ButtonMale} {
		h.text(input)
	}
	h.expectState(StateAskBodyFat)

	h.messenger.reset()
	h.text("NaN")
	h.expectState(StateAskBodyFat)
	h.expectReply(msgEnterBodyFat)

	h.text("20")
	h.text(ButtonMedium)
	h.text(ButtonConfirm)
	h.expectState(StateIdle)

	h.text(ButtonTrackWeight)
	h.text(ButtonToday)
	h.messenger.reset()
	h.text("Inf")
	h.expectState(StateInputWeight)
	h.expectReply(msgEnterWeight)
	h.text("1e2")
	h.expectState(StateInputWeight)

	h.text("79")
	h.expectState(StateIdle)

	h.messenger.reset()
	h.text("вес NaN")
	h.expectReply(msgIdleHint)

	user, err := h.store.GetUser(testUser)
	if err != nil {
		t.Fatal(err)
	}
	if user.BodyFat != 20 || user.Weight != 79 {
		t.Fatalf("profile = %+v, want body fat 20 and weight 79", user)
	}
}

func TestMenuDateSurvivesMidnight(t *testing.T) {
	h := newHarness(t)
	h.register()
	h.now = time.Date(2024, 3, 12, 23, 59, 0, 0, time.UTC)

	h.text(ButtonTrackSteps)
	h.text(ButtonYesterday)
	h.expectState(StateInputSteps)

	h.now = time.Date(2024, 3, 13, 0, 1, 0, 0, time.UTC)
	h.text("5000")
	h.expectState(StateIdle)
	h.expectReply("Шаги за вчера сохранены: 5000")
	h.expectReply("*Итоги за 11.03:*")

	steps, ok, err := h.store.GetSteps(testUser, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
	if err != nil || !ok || steps != 5000 {
		t.Fatalf("steps on 11.03 = %d, %v, %v; want 5000", steps, ok, err)
	}
	if _, ok, _ := h.store.GetSteps(testUser, h.now); ok {
		t.Fatal("steps filed under the day the number arrived")
	}
}

func TestMenuWeightDateSurvivesMidnight(t *testing.T) {
	h := newHarness(t)
	h.register()
	h.now = time.Date(2024, 3, 12, 23, 59, 0, 0, time.UTC)

	h.text(ButtonTrackWeight)
	h.text(ButtonToday)
	h.now = time.Date(2024, 3, 13, 0, 1, 0, 0, time.UTC)
	h.text("81")

	last, ok, err := h.store.GetLastWeight(testUser, h.now)
	if err != nil || !ok || last != 81 {
		t.Fatalf("weight before 13.03 = %v, %v, %v; want 81 on 12.03", last, ok, err)
	}
}
