package services

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/app/repositories"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/helpers"
)

// In-memory stores used by the service tests

type fakeBatches struct {
	rows   map[int64]models.Batch
	nextID int64
}

func newFakeBatches(batches ...models.Batch) *fakeBatches {
	f := &fakeBatches{rows: make(map[int64]models.Batch)}
	for _, b := range batches {
		f.rows[b.ID] = b
		if b.ID > f.nextID {
			f.nextID = b.ID
		}
	}
	return f
}

func (f *fakeBatches) Create(_ context.Context, b *models.Batch) error {
	for _, existing := range f.rows {
		if existing.Name == b.Name {
			return apperrors.ErrBatchNameTaken
		}
	}
	f.nextID++
	b.ID = f.nextID
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBatches) GetByID(_ context.Context, id int64) (*models.Batch, error) {
	b, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrBatchNotFound
	}
	return &b, nil
}

func (f *fakeBatches) List(context.Context) ([]models.Batch, error) {
	out := make([]models.Batch, 0, len(f.rows))
	for _, b := range f.rows {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBatches) Update(_ context.Context, id int64, patch models.BatchPatch) error {
	b, ok := f.rows[id]
	if !ok {
		return apperrors.ErrBatchNotFound
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.StartDate != nil {
		b.StartDate = patch.StartDate
	}
	f.rows[id] = b
	return nil
}

func (f *fakeBatches) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return apperrors.ErrBatchNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeStudents struct {
	rows map[int64]models.Student
}

func newFakeStudents(students ...models.Student) *fakeStudents {
	f := &fakeStudents{rows: make(map[int64]models.Student)}
	for _, s := range students {
		f.rows[s.RegNo] = s
	}
	return f
}

func (f *fakeStudents) Create(_ context.Context, s *models.Student) error {
	if _, ok := f.rows[s.RegNo]; ok {
		return apperrors.ErrStudentExists
	}
	f.rows[s.RegNo] = *s
	return nil
}

func (f *fakeStudents) GetByRegNo(_ context.Context, regNo int64) (*models.Student, error) {
	s, ok := f.rows[regNo]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &s, nil
}

func (f *fakeStudents) List(_ context.Context, filter models.StudentFilter) ([]models.Student, error) {
	out := make([]models.Student, 0)
	for _, s := range f.rows {
		if filter.BatchID != nil && s.BatchID != *filter.BatchID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStudents) Update(_ context.Context, regNo int64, patch models.StudentPatch) error {
	s, ok := f.rows[regNo]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if len(patch.Changes()) == 0 {
		return apperrors.NewValidationError("", "no fields to update")
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.BatchID != nil {
		s.BatchID = *patch.BatchID
	}
	if patch.Address != nil {
		s.Address = *patch.Address
	}
	f.rows[regNo] = s
	return nil
}

func (f *fakeStudents) Delete(_ context.Context, regNo int64) error {
	if _, ok := f.rows[regNo]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.rows, regNo)
	return nil
}

type fakeInstructors struct {
	rows map[int64]models.Instructor
}

func (f *fakeInstructors) Create(_ context.Context, in *models.Instructor) error {
	in.ID = int64(len(f.rows) + 1)
	f.rows[in.ID] = *in
	return nil
}

func (f *fakeInstructors) GetByID(_ context.Context, id int64) (*models.Instructor, error) {
	in, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrInstructorNotFound
	}
	return &in, nil
}

func (f *fakeInstructors) List(context.Context) ([]models.Instructor, error) {
	out := make([]models.Instructor, 0, len(f.rows))
	for _, in := range f.rows {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeInstructors) Update(context.Context, int64, models.InstructorPatch) error {
	return nil
}

func (f *fakeInstructors) Delete(context.Context, int64) error {
	return nil
}

type fakeCourses struct {
	rows map[string]models.Course
}

func (f *fakeCourses) Create(_ context.Context, c *models.Course) error {
	if _, ok := f.rows[c.ID]; ok {
		return apperrors.ErrCourseExists
	}
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCourses) GetByID(_ context.Context, id string) (*models.Course, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return &c, nil
}

func (f *fakeCourses) List(context.Context) ([]models.Course, error) {
	out := make([]models.Course, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCourses) Update(context.Context, string, models.CoursePatch) error {
	return nil
}

func (f *fakeCourses) Delete(context.Context, string) error {
	return nil
}

// fakeExams keeps results in step with exam updates the way the store does
type fakeExams struct {
	rows    map[int64]models.Exam
	updates []models.ExamPatch
	results *fakeResults
}

func newFakeExams(exams ...models.Exam) *fakeExams {
	f := &fakeExams{rows: make(map[int64]models.Exam)}
	for _, e := range exams {
		f.rows[e.ID] = e
	}
	return f
}

func (f *fakeExams) Create(_ context.Context, e *models.Exam) error {
	e.ID = int64(len(f.rows) + 1)
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeExams) GetByID(_ context.Context, id int64) (*models.Exam, error) {
	e, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrExamNotFound
	}
	return &e, nil
}

func (f *fakeExams) List(context.Context, models.ExamFilter) ([]models.Exam, error) {
	out := make([]models.Exam, 0, len(f.rows))
	for _, e := range f.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeExams) Update(_ context.Context, id int64, patch models.ExamPatch) error {
	e, ok := f.rows[id]
	if !ok {
		return apperrors.ErrExamNotFound
	}
	if patch.MaxScore != nil && f.results != nil {
		for _, r := range f.results.rows {
			if r.ExamID != id || r.Mark == nil {
				continue
			}
			if m := *r.Mark; m > *patch.MaxScore || -m > *patch.MaxScore {
				return apperrors.NewValidationError("max_score", "max_score must be at least the largest recorded mark")
			}
		}
	}
	f.updates = append(f.updates, patch)
	f.rows[id] = patch.Apply(e)

	if patch.CutoffScore != nil && f.results != nil {
		for rid, r := range f.results.rows {
			if r.ExamID == id {
				r.Status = domain.EvaluateStatus(r.Mark, *patch.CutoffScore)
				f.results.rows[rid] = r
			}
		}
	}
	return nil
}

func (f *fakeExams) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

type fakeResults struct {
	rows     map[int64]models.Result
	students *fakeStudents
	exams    *fakeExams
	nextID   int64
}

func newFakeResults(students *fakeStudents, exams *fakeExams) *fakeResults {
	f := &fakeResults{rows: make(map[int64]models.Result), students: students, exams: exams}
	exams.results = f
	return f
}

func (f *fakeResults) Upsert(_ context.Context, res *models.Result) error {
	for id, existing := range f.rows {
		if existing.StudentID == res.StudentID && existing.ExamID == res.ExamID {
			res.ID = id
			f.rows[id] = *res
			return nil
		}
	}
	f.nextID++
	res.ID = f.nextID
	f.rows[res.ID] = *res
	return nil
}

func (f *fakeResults) FindByStudentAndExam(_ context.Context, studentID, examID int64) (*models.Result, error) {
	for _, r := range f.rows {
		if r.StudentID == studentID && r.ExamID == examID {
			return &r, nil
		}
	}
	return nil, apperrors.ErrResultNotFound
}

func (f *fakeResults) GetByID(_ context.Context, id int64) (*models.Result, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrResultNotFound
	}
	return &r, nil
}

func (f *fakeResults) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return apperrors.ErrResultNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeResults) ListByExam(_ context.Context, examID int64) ([]models.Result, error) {
	out := make([]models.Result, 0)
	for _, r := range f.rows {
		if r.ExamID != examID {
			continue
		}
		if s, ok := f.students.rows[r.StudentID]; ok {
			r.StudentName = s.Name
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentName < out[j].StudentName })
	return out, nil
}

func (f *fakeResults) ListByStudent(_ context.Context, studentID int64) ([]models.Result, error) {
	out := make([]models.Result, 0)
	for _, r := range f.rows {
		if r.StudentID != studentID {
			continue
		}
		if e, ok := f.exams.rows[r.ExamID]; ok {
			r.ExamName = e.Name
			r.ExamDate = e.ExamDate
			r.MaxScore = e.MaxScore
			r.CutoffScore = e.CutoffScore
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExamDate.After(out[j].ExamDate) })
	return out, nil
}

// fakeFinance mimics the store's receipt issuance. conflicts makes the next
// Issue calls fail as if another writer took the receipt first.
type fakeFinance struct {
	mu        sync.Mutex
	rows      map[string]models.FinanceRecord
	students  *fakeStudents
	conflicts int
	issues    int
}

func newFakeFinance(students *fakeStudents, records ...models.FinanceRecord) *fakeFinance {
	f := &fakeFinance{rows: make(map[string]models.FinanceRecord), students: students}
	for _, r := range records {
		f.rows[r.ReceiptID] = r
	}
	return f
}

func receiptLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func (f *fakeFinance) latest(prefix string) *string {
	var latest *string
	for id := range f.rows {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if latest == nil || receiptLess(*latest, id) {
			id := id
			latest = &id
		}
	}
	return latest
}

func (f *fakeFinance) FindLatestReceiptForPrefix(_ context.Context, prefix string) (*string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest(prefix), nil
}

func (f *fakeFinance) Issue(_ context.Context, fy string, next repositories.ReceiptIDFunc, rec *models.FinanceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues++

	id, err := next(f.latest(domain.ReceiptPrefix(fy)))
	if err != nil {
		return err
	}
	if f.conflicts > 0 {
		f.conflicts--
		return apperrors.ErrReceiptConflict
	}
	if _, taken := f.rows[id]; taken {
		return apperrors.ErrReceiptConflict
	}

	rec.ReceiptID = id
	stored := *rec
	if s, ok := f.students.rows[rec.StudentID]; ok {
		stored.StudentName = s.Name
	}
	f.rows[id] = stored
	return nil
}

func (f *fakeFinance) GetByReceiptID(_ context.Context, receiptID string) (*models.FinanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[receiptID]
	if !ok {
		return nil, apperrors.ErrReceiptNotFound
	}
	return &r, nil
}

func (f *fakeFinance) List(_ context.Context, filter models.FinanceFilter) ([]models.FinanceRecord, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.FinanceRecord, 0)
	for _, r := range f.rows {
		if filter.StudentID != nil && r.StudentID != *filter.StudentID {
			continue
		}
		if filter.FinancialYear != "" && !strings.HasPrefix(r.ReceiptID, domain.ReceiptPrefix(filter.FinancialYear)) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return out, int64(len(out)), nil
}

func (f *fakeFinance) ListByFinancialYear(ctx context.Context, fy string) ([]models.FinanceRecord, error) {
	out, _, err := f.List(ctx, models.FinanceFilter{FinancialYear: fy})
	sort.Slice(out, func(i, j int) bool { return receiptLess(out[i].ReceiptID, out[j].ReceiptID) })
	return out, err
}

func (f *fakeFinance) Update(_ context.Context, receiptID string, patch models.FinancePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[receiptID]
	if !ok {
		return apperrors.ErrReceiptNotFound
	}
	if _, err := helpers.BuildSetMap(patch.Changes(), helpers.NewColumnSet("amount", "type", "payment_method", "payment_date")); err != nil {
		return err
	}
	if patch.Amount != nil {
		r.Amount = *patch.Amount
	}
	if patch.Type != nil {
		r.Type = *patch.Type
	}
	if patch.PaymentMethod != nil {
		r.PaymentMethod = *patch.PaymentMethod
	}
	if patch.PaymentDate != nil {
		r.PaymentDate = *patch.PaymentDate
	}
	f.rows[receiptID] = r
	return nil
}

func (f *fakeFinance) Delete(_ context.Context, receiptID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[receiptID]; !ok {
		return apperrors.ErrReceiptNotFound
	}
	delete(f.rows, receiptID)
	return nil
}

type fakeOperators struct {
	rows map[string]models.Operator
}

func (f *fakeOperators) Create(_ context.Context, op *models.Operator) error {
	if _, ok := f.rows[op.Username]; ok {
		return apperrors.ErrOperatorExists
	}
	op.ID = int64(len(f.rows) + 1)
	f.rows[op.Username] = *op
	return nil
}

func (f *fakeOperators) GetByUsername(_ context.Context, username string) (*models.Operator, error) {
	op, ok := f.rows[username]
	if !ok {
		return nil, apperrors.ErrOperatorNotFound
	}
	return &op, nil
}

type fakePhotos struct {
	saved   map[int64]bool
	deleted []int64
}

func newFakePhotos() *fakePhotos {
	return &fakePhotos{saved: make(map[int64]bool)}
}

func (f *fakePhotos) Save(regNo int64, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.saved[regNo] = true
	return "/photos/" + strconv.FormatInt(regNo, 10) + ".png", nil
}

func (f *fakePhotos) URL(regNo int64, gender domain.Gender) string {
	if f.saved[regNo] {
		return "/photos/" + strconv.FormatInt(regNo, 10) + ".png"
	}
	return "/photos/default_" + string(gender) + ".png"
}

func (f *fakePhotos) Has(regNo int64) bool {
	return f.saved[regNo]
}

func (f *fakePhotos) Delete(regNo int64) error {
	delete(f.saved, regNo)
	f.deleted = append(f.deleted, regNo)
	return nil
}
