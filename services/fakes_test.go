package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/repositories"
	"github.com/Dosada05/atletica-scoreboard/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTxDB returns a sqlmock database expecting txCount transactions, each
// committed when commit is true and rolled back otherwise.
func newTxDB(t *testing.T, txCount int, commit bool) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	for i := 0; i < txCount; i++ {
		mock.ExpectBegin()
		if commit {
			mock.ExpectCommit()
		} else {
			mock.ExpectRollback()
		}
	}
	return db, mock
}

type fakeCompetitionRepo struct {
	mu           sync.Mutex
	competitions map[int]*models.Competition
	nextID       int
	failCreate   error
}

func newFakeCompetitionRepo(competitions ...models.Competition) *fakeCompetitionRepo {
	r := &fakeCompetitionRepo{competitions: map[int]*models.Competition{}, nextID: 1}
	for i := range competitions {
		c := competitions[i]
		r.competitions[c.ID] = &c
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *fakeCompetitionRepo) Create(_ context.Context, _ repositories.SQLExecutor, c *models.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	c.ID = r.nextID
	r.nextID++
	stored := *c
	r.competitions[c.ID] = &stored
	return nil
}

func (r *fakeCompetitionRepo) GetByID(_ context.Context, id int) (*models.Competition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.competitions[id]
	if !ok {
		return nil, repositories.ErrCompetitionNotFound
	}
	out := *c
	return &out, nil
}

func (r *fakeCompetitionRepo) GetActive(_ context.Context) (*models.Competition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.competitions {
		if c.IsActive {
			out := *c
			return &out, nil
		}
	}
	return nil, repositories.ErrNoActiveCompetition
}

func (r *fakeCompetitionRepo) List(_ context.Context) ([]models.Competition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Competition
	for _, c := range r.competitions {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCompetitionRepo) DeactivateAll(_ context.Context, _ repositories.SQLExecutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.competitions {
		c.IsActive = false
	}
	return nil
}

func (r *fakeCompetitionRepo) Activate(_ context.Context, _ repositories.SQLExecutor, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.competitions[id]
	if !ok {
		return repositories.ErrCompetitionNotFound
	}
	c.IsActive = true
	return nil
}

func (r *fakeCompetitionRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.competitions[id]; !ok {
		return repositories.ErrCompetitionNotFound
	}
	delete(r.competitions, id)
	return nil
}

type fakeAthleticRepo struct {
	mu        sync.Mutex
	athletics []models.Athletic
	nextID    int
}

func newFakeAthleticRepo(athletics ...models.Athletic) *fakeAthleticRepo {
	r := &fakeAthleticRepo{nextID: 1}
	for _, a := range athletics {
		r.athletics = append(r.athletics, a)
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
	return r
}

func (r *fakeAthleticRepo) Create(_ context.Context, a *models.Athletic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.athletics {
		if existing.Name == a.Name {
			return repositories.ErrAthleticNameConflict
		}
	}
	a.ID = r.nextID
	r.nextID++
	r.athletics = append(r.athletics, *a)
	return nil
}

func (r *fakeAthleticRepo) GetByID(_ context.Context, id int) (*models.Athletic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.athletics {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, repositories.ErrAthleticNotFound
}

func (r *fakeAthleticRepo) List(_ context.Context) ([]models.Athletic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Athletic(nil), r.athletics...), nil
}

func (r *fakeAthleticRepo) Update(_ context.Context, a *models.Athletic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.athletics {
		if existing.ID == a.ID {
			r.athletics[i] = *a
			return nil
		}
	}
	return repositories.ErrAthleticNotFound
}

func (r *fakeAthleticRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.athletics {
		if existing.ID == id {
			r.athletics = append(r.athletics[:i], r.athletics[i+1:]...)
			return nil
		}
	}
	return repositories.ErrAthleticNotFound
}

type fakeModalityRepo struct {
	mu         sync.Mutex
	modalities map[int]*models.Modality
	nextID     int
}

func newFakeModalityRepo(modalities ...models.Modality) *fakeModalityRepo {
	r := &fakeModalityRepo{modalities: map[int]*models.Modality{}, nextID: 1}
	for i := range modalities {
		m := modalities[i]
		r.modalities[m.ID] = &m
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
	}
	return r
}

func (r *fakeModalityRepo) Create(_ context.Context, _ repositories.SQLExecutor, m *models.Modality) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.modalities {
		if existing.CompetitionID == m.CompetitionID && existing.Name == m.Name && existing.Gender == m.Gender {
			return repositories.ErrModalityConflict
		}
	}
	m.ID = r.nextID
	r.nextID++
	stored := *m
	r.modalities[m.ID] = &stored
	return nil
}

func (r *fakeModalityRepo) GetByID(_ context.Context, id int) (*models.Modality, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modalities[id]
	if !ok {
		return nil, repositories.ErrModalityNotFound
	}
	out := *m
	return &out, nil
}

func (r *fakeModalityRepo) ListByCompetition(_ context.Context, competitionID int) ([]models.Modality, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Modality
	for _, m := range r.modalities {
		if m.CompetitionID == competitionID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeModalityRepo) Update(_ context.Context, m *models.Modality) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modalities[m.ID]; !ok {
		return repositories.ErrModalityNotFound
	}
	stored := *m
	r.modalities[m.ID] = &stored
	return nil
}

func (r *fakeModalityRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.ModalityStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modalities[id]
	if !ok {
		return repositories.ErrModalityNotFound
	}
	m.Status = status
	return nil
}

func (r *fakeModalityRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modalities[id]; !ok {
		return repositories.ErrModalityNotFound
	}
	delete(r.modalities, id)
	return nil
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results map[[2]int]models.Result
	nextID  int
}

func newFakeResultRepo(results ...models.Result) *fakeResultRepo {
	r := &fakeResultRepo{results: map[[2]int]models.Result{}, nextID: 1}
	for _, res := range results {
		r.results[[2]int{res.CompetitionID, res.ModalityID}] = res
		if res.ID >= r.nextID {
			r.nextID = res.ID + 1
		}
	}
	return r
}

func (r *fakeResultRepo) Upsert(_ context.Context, _ repositories.SQLExecutor, res *models.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int{res.CompetitionID, res.ModalityID}
	if existing, ok := r.results[key]; ok {
		res.ID = existing.ID
	} else {
		res.ID = r.nextID
		r.nextID++
	}
	stored := *res
	stored.Ranking = res.Ranking.Clone()
	r.results[key] = stored
	return nil
}

func (r *fakeResultRepo) GetByModality(_ context.Context, competitionID, modalityID int) (*models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.results[[2]int{competitionID, modalityID}]
	if !ok {
		return nil, repositories.ErrResultNotFound
	}
	return &res, nil
}

func (r *fakeResultRepo) ListByCompetition(_ context.Context, competitionID int) ([]models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Result
	for key, res := range r.results {
		if key[0] == competitionID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeResultRepo) DeleteByModality(_ context.Context, _ repositories.SQLExecutor, competitionID, modalityID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int{competitionID, modalityID}
	if _, ok := r.results[key]; !ok {
		return repositories.ErrResultNotFound
	}
	delete(r.results, key)
	return nil
}

type fakePenaltyRepo struct {
	mu        sync.Mutex
	penalties []models.Penalty
	nextID    int
}

func (r *fakePenaltyRepo) Create(_ context.Context, p *models.Penalty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.penalties = append(r.penalties, *p)
	return nil
}

func (r *fakePenaltyRepo) ListByCompetition(_ context.Context, competitionID int) ([]models.Penalty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Penalty
	for _, p := range r.penalties {
		if p.CompetitionID == competitionID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePenaltyRepo) Delete(_ context.Context, competitionID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.penalties {
		if p.ID == id && p.CompetitionID == competitionID {
			r.penalties = append(r.penalties[:i], r.penalties[i+1:]...)
			return nil
		}
	}
	return repositories.ErrPenaltyNotFound
}

type fakeScoreRuleRepo struct {
	mu         sync.Mutex
	rules      map[int]models.ModalityScoreRule
	// modalities maps modality ID to competition ID for ListByCompetition.
	modalities map[int]int
}

func newFakeScoreRuleRepo(modalities map[int]int) *fakeScoreRuleRepo {
	return &fakeScoreRuleRepo{rules: map[int]models.ModalityScoreRule{}, modalities: modalities}
}

func (r *fakeScoreRuleRepo) Upsert(_ context.Context, rule models.ModalityScoreRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modalities[rule.ModalityID]; !ok {
		return repositories.ErrModalityNotFound
	}
	r.rules[rule.ModalityID] = rule
	return nil
}

func (r *fakeScoreRuleRepo) ListByCompetition(_ context.Context, competitionID int) ([]models.ModalityScoreRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ModalityScoreRule
	for id, rule := range r.rules {
		if r.modalities[id] == competitionID {
			out = append(out, rule)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModalityID < out[j].ModalityID })
	return out, nil
}

func (r *fakeScoreRuleRepo) Delete(_ context.Context, modalityID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[modalityID]; !ok {
		return repositories.ErrScoreRuleNotFound
	}
	delete(r.rules, modalityID)
	return nil
}

type fakeSettingsRepo struct {
	settings *models.AppSettings
	err      error
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*models.AppSettings, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.settings == nil {
		s := models.DefaultAppSettings
		return &s, nil
	}
	out := *r.settings
	return &out, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, s *models.AppSettings) error {
	if r.err != nil {
		return r.err
	}
	stored := *s
	r.settings = &stored
	return nil
}

type fakeFinanceRepo struct {
	categories   []models.FinanceCategory
	transactions []models.Transaction
	nextID       int
}

func (r *fakeFinanceRepo) ListCategories(_ context.Context) ([]models.FinanceCategory, error) {
	return append([]models.FinanceCategory(nil), r.categories...), nil
}

func (r *fakeFinanceRepo) CreateCategory(_ context.Context, c *models.FinanceCategory) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return repositories.ErrCategoryNameConflict
		}
	}
	r.nextID++
	c.ID = r.nextID
	r.categories = append(r.categories, *c)
	return nil
}

func (r *fakeFinanceRepo) RenameCategory(_ context.Context, id int, name string) error {
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories[i].Name = name
			return nil
		}
	}
	return repositories.ErrCategoryNotFound
}

func (r *fakeFinanceRepo) DeleteCategory(_ context.Context, id int) error {
	for _, t := range r.transactions {
		if t.CategoryID != nil && *t.CategoryID == id {
			return repositories.ErrCategoryInUse
		}
	}
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return repositories.ErrCategoryNotFound
}

func (r *fakeFinanceRepo) ListTransactions(_ context.Context) ([]models.Transaction, error) {
	return append([]models.Transaction(nil), r.transactions...), nil
}

func (r *fakeFinanceRepo) CreateTransaction(_ context.Context, t *models.Transaction) error {
	if t.CategoryID != nil {
		found := false
		for _, c := range r.categories {
			found = found || c.ID == *t.CategoryID
		}
		if !found {
			return repositories.ErrCategoryNotFound
		}
	}
	r.nextID++
	t.ID = r.nextID
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *fakeFinanceRepo) DeleteTransaction(_ context.Context, id int) error {
	for i := range r.transactions {
		if r.transactions[i].ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return repositories.ErrTransactionNotFound
}

type fakeProductRepo struct {
	products map[int]*models.Product
	nextID   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int]*models.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	r.nextID++
	p.ID = r.nextID
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *models.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return repositories.ErrProductNotFound
	}
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id, delta int) (int, error) {
	p, ok := r.products[id]
	if !ok {
		return 0, repositories.ErrProductNotFound
	}
	if p.Quantity+delta < 0 {
		return 0, repositories.ErrInsufficientStock
	}
	p.Quantity += delta
	return p.Quantity, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.products[id]; !ok {
		return repositories.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []int
}

func (n *recordingNotifier) NotifyChanged(_ context.Context, competitionID int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, competitionID)
}

type publishedMessage struct {
	CompetitionID int
	Type          string
	Payload       any
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []publishedMessage
}

func (b *recordingBroadcaster) Publish(competitionID int, messageType string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, publishedMessage{competitionID, messageType, payload})
}

type fakeUploader struct {
	objects map[string][]byte
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, obj storage.Object) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, err
	}
	if u.objects == nil {
		u.objects = map[string][]byte{}
	}
	u.objects[obj.Key] = body
	return &storage.UploadResult{Key: obj.Key, Location: u.PublicURL(obj.Key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	delete(u.objects, key)
	return nil
}

func (u *fakeUploader) PublicURL(key string) string {
	return "https://cdn.example.test/" + key
}
