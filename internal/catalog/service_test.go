package catalog

import (
	"errors"
	"testing"
	"time"

	"quizmaster/internal/apperr"
	"quizmaster/internal/models"
)

// fakeStore honors the Store contract, including the cascading-delete
// semantics the gorm repository implements transactionally.
type fakeStore struct {
	subjects  map[uint]models.Subject
	chapters  map[uint]models.Chapter
	quizzes   map[uint]models.Quiz
	questions map[uint]models.Question
	scores    map[uint]models.Score
	users     map[uint]models.User
	nextID    uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		subjects:  map[uint]models.Subject{},
		chapters:  map[uint]models.Chapter{},
		quizzes:   map[uint]models.Quiz{},
		questions: map[uint]models.Question{},
		scores:    map[uint]models.Score{},
		users:     map[uint]models.User{},
	}
}

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateSubject(s *models.Subject) error {
	s.ID = f.id()
	f.subjects[s.ID] = *s
	return nil
}

func (f *fakeStore) Subjects() ([]models.Subject, error) {
	var out []models.Subject
	for _, s := range f.subjects {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) SubjectByID(id uint) (*models.Subject, error) {
	s, ok := f.subjects[id]
	if !ok {
		return nil, apperr.NotFoundf("subject %d", id)
	}
	return &s, nil
}

func (f *fakeStore) DeleteSubjectCascade(id uint) error {
	for cid, c := range f.chapters {
		if c.SubjectID == id {
			if err := f.DeleteChapterCascade(cid); err != nil {
				return err
			}
		}
	}
	delete(f.subjects, id)
	return nil
}

func (f *fakeStore) CreateChapter(c *models.Chapter) error {
	c.ID = f.id()
	f.chapters[c.ID] = *c
	return nil
}

func (f *fakeStore) ChaptersBySubject(subjectID uint) ([]models.Chapter, error) {
	var out []models.Chapter
	for _, c := range f.chapters {
		if c.SubjectID == subjectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ChapterByID(id uint) (*models.Chapter, error) {
	c, ok := f.chapters[id]
	if !ok {
		return nil, apperr.NotFoundf("chapter %d", id)
	}
	return &c, nil
}

func (f *fakeStore) DeleteChapterCascade(id uint) error {
	for qid, q := range f.quizzes {
		if q.ChapterID == id {
			if err := f.DeleteQuizCascade(qid); err != nil {
				return err
			}
		}
	}
	delete(f.chapters, id)
	return nil
}

func (f *fakeStore) CreateQuizWithQuestions(quiz *models.Quiz, questions []models.Question) error {
	quiz.ID = f.id()
	f.quizzes[quiz.ID] = *quiz
	for i := range questions {
		questions[i].ID = f.id()
		questions[i].QuizID = quiz.ID
		f.questions[questions[i].ID] = questions[i]
	}
	quiz.Questions = questions
	return nil
}

func (f *fakeStore) QuizzesByChapter(chapterID uint) ([]models.Quiz, error) {
	var out []models.Quiz
	for _, q := range f.quizzes {
		if q.ChapterID == chapterID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) QuizByID(id uint) (*models.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, apperr.NotFoundf("quiz %d", id)
	}
	return &q, nil
}

func (f *fakeStore) DeleteQuizCascade(id uint) error {
	for qid, q := range f.questions {
		if q.QuizID == id {
			delete(f.questions, qid)
		}
	}
	for sid, s := range f.scores {
		if s.QuizID == id {
			delete(f.scores, sid)
		}
	}
	delete(f.quizzes, id)
	return nil
}

func (f *fakeStore) NonAdminUsers() ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if !u.IsAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) UserByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFoundf("user %d", id)
	}
	return &u, nil
}

func (f *fakeStore) DeleteUserCascade(id uint) error {
	for sid, s := range f.scores {
		if s.UserID == id {
			delete(f.scores, sid)
		}
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) SearchUsers(query string) ([]models.User, error) {
	return nil, nil
}

func (f *fakeStore) SearchSubjects(query string) ([]models.Subject, error) {
	return nil, nil
}

func (f *fakeStore) SearchQuizzes(query string) ([]models.Quiz, error) {
	return nil, nil
}

func seedTree(t *testing.T, svc *Service, store *fakeStore) (subjectID, chapterID, quizID uint) {
	t.Helper()
	subject, err := svc.CreateSubject("Maths", "numbers")
	if err != nil {
		t.Fatal(err)
	}
	chapter, err := svc.CreateChapter("Algebra", "", subject.ID)
	if err != nil {
		t.Fatal(err)
	}
	quiz, err := svc.CreateQuiz(chapter.ID, CreateQuizInput{
		Title:    "Quiz 1",
		LiveFrom: time.Now(),
		LiveTo:   time.Now().Add(time.Hour),
		Questions: []QuestionInput{
			{Statement: "1+1?", Option1: "1", Option2: "2", Option3: "3", Option4: "4", CorrectOption: 2},
			{Statement: "2+2?", Option1: "2", Option2: "3", Option3: "4", Option4: "5", CorrectOption: 3},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return subject.ID, chapter.ID, quiz.ID
}

func TestCreateChapterRequiresExistingSubject(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.CreateChapter("orphan", "", 42)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("dangling subject reference must be a validation error, got %v", err)
	}
	if len(store.chapters) != 0 {
		t.Fatal("no chapter row may be created")
	}
}

func TestCreateQuizRequiresExistingChapter(t *testing.T) {
	svc := NewService(newFakeStore())
	_, err := svc.CreateQuiz(42, CreateQuizInput{Title: "t"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("dangling chapter reference must be a validation error, got %v", err)
	}
}

func TestCreateQuizValidatesCorrectOption(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	subject, _ := svc.CreateSubject("s", "")
	chapter, _ := svc.CreateChapter("c", "", subject.ID)

	for _, bad := range []int{0, 5, -1} {
		_, err := svc.CreateQuiz(chapter.ID, CreateQuizInput{
			Title: "t",
			Questions: []QuestionInput{
				{Statement: "q", Option1: "a", Option2: "b", Option3: "c", Option4: "d", CorrectOption: bad},
			},
		})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("correct_option %d must be rejected, got %v", bad, err)
		}
	}
	if len(store.quizzes) != 0 || len(store.questions) != 0 {
		t.Fatal("rejected batch must leave no rows")
	}
}

func TestCreateQuizPersistsQuestionBatch(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	_, _, quizID := seedTree(t, svc, store)

	if len(store.questions) != 2 {
		t.Fatalf("question batch not persisted, have %d", len(store.questions))
	}
	for _, q := range store.questions {
		if q.QuizID != quizID {
			t.Fatalf("question %d not attached to quiz %d", q.ID, quizID)
		}
	}
}

func TestDeleteSubjectCascades(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	subjectID, _, quizID := seedTree(t, svc, store)

	// A score on the quiz must disappear with the subject.
	store.scores[1] = models.Score{ID: 1, QuizID: quizID, UserID: 7}

	if err := svc.DeleteSubject(subjectID); err != nil {
		t.Fatal(err)
	}
	if len(store.subjects)+len(store.chapters)+len(store.quizzes)+len(store.questions)+len(store.scores) != 0 {
		t.Fatalf("orphan rows remain: %d subjects %d chapters %d quizzes %d questions %d scores",
			len(store.subjects), len(store.chapters), len(store.quizzes),
			len(store.questions), len(store.scores))
	}
}

func TestDeleteMissingSubjectIsNotFound(t *testing.T) {
	svc := NewService(newFakeStore())
	if err := svc.DeleteSubject(42); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteUserCascadesScores(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	store.users[7] = models.User{ID: 7, Username: "u"}
	store.scores[1] = models.Score{ID: 1, QuizID: 3, UserID: 7}
	store.scores[2] = models.Score{ID: 2, QuizID: 4, UserID: 8}

	if err := svc.DeleteUser(7); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.scores[1]; ok {
		t.Fatal("deleted user's scores must be removed")
	}
	if _, ok := store.scores[2]; !ok {
		t.Fatal("other users' scores must survive")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := NewService(newFakeStore())
	results, err := svc.Search("")
	if err != nil {
		t.Fatal(err)
	}
	if len(results.Users)+len(results.Subjects)+len(results.Quizzes) != 0 {
		t.Fatal("empty query must return empty results")
	}
}
