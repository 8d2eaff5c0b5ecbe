package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"python-tutor-bot/internal/domain/curriculum"
	"python-tutor-bot/internal/domain/user"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "tutor_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepository_SaveAndFindRoundTrip(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, user.NewUser(42)))

	found, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID(42), found.ID())
	assert.Equal(t, user.LanguageEnglish, found.Language())
	assert.Equal(t, curriculum.LevelBeginner, found.Level())
	assert.Equal(t, 1, found.LessonCursor())
	assert.Equal(t, 0, found.Progress())
}

func TestUserRepository_FindMissingReturnsNil(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	found, err := repo.FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserRepository_UpdateLanguageAndLevel(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, user.NewUser(42)))

	require.NoError(t, repo.UpdateLanguage(ctx, 42, user.LanguageArabic))
	require.NoError(t, repo.UpdateLevel(ctx, 42, curriculum.LevelAdvanced))

	found, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, user.LanguageArabic, found.Language())
	assert.Equal(t, curriculum.LevelAdvanced, found.Level())
}

func TestUserRepository_ApplyQuizSuccessIdempotentPerLesson(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, user.NewUser(42)))

	// A first-time completion applies
	applied, err := repo.ApplyQuizSuccess(ctx, 42, curriculum.LevelBeginner, 1)
	require.NoError(t, err)
	assert.True(t, applied)

	// A duplicate delivery of the same completion is a no-op
	applied, err = repo.ApplyQuizSuccess(ctx, 42, curriculum.LevelBeginner, 1)
	require.NoError(t, err)
	assert.False(t, applied)

	// The next lesson is its own completion
	applied, err = repo.ApplyQuizSuccess(ctx, 42, curriculum.LevelBeginner, 2)
	require.NoError(t, err)
	assert.True(t, applied)

	found, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 3, found.LessonCursor())
	assert.Equal(t, 2, found.Progress())
}

func TestUserRepository_ApplyQuizSuccessAcrossLevels(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, user.NewUser(42)))

	// Finish every beginner lesson
	for ordinal := 1; ordinal <= 5; ordinal++ {
		applied, err := repo.ApplyQuizSuccess(ctx, 42, curriculum.LevelBeginner, ordinal)
		require.NoError(t, err)
		assert.True(t, applied)
	}

	// Ordinals restart per level; the first intermediate lesson has never
	// been completed and must earn credit
	applied, err := repo.ApplyQuizSuccess(ctx, 42, curriculum.LevelIntermediate, 1)
	require.NoError(t, err)
	assert.True(t, applied)

	found, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 6, found.Progress())

	// But the beginner lesson with the same ordinal stays credited once
	applied, err = repo.ApplyQuizSuccess(ctx, 42, curriculum.LevelBeginner, 1)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestUserRepository_ApplyQuizSuccessConcurrentDuplicates(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, user.NewUser(42)))

	var mu sync.Mutex
	applied := 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.ApplyQuizSuccess(ctx, 42, curriculum.LevelBeginner, 1)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, applied)

	found, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Progress())
	assert.Equal(t, 2, found.LessonCursor())
}

func TestUserRepository_GetAllUsers(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, user.NewUser(1)))
	require.NoError(t, repo.Save(ctx, user.NewUser(2)))

	users, err := repo.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func seedLessons() ([]*curriculum.Lesson, map[int]*curriculum.Quiz) {
	lessons := []*curriculum.Lesson{
		curriculum.NewLesson(curriculum.LevelBeginner, 1,
			map[string]string{"en": "Intro", "fr": "Intro (fr)", "ar": "Intro (ar)"},
			"What Python is", "print('hi')"),
		curriculum.NewLesson(curriculum.LevelBeginner, 2,
			map[string]string{"en": "Variables", "fr": "Variables (fr)", "ar": "Variables (ar)"},
			"Names and values", "x = 1"),
		curriculum.NewLesson(curriculum.LevelIntermediate, 1,
			map[string]string{"en": "Classes", "fr": "Classes (fr)", "ar": "Classes (ar)"},
			"Objects", "class A: pass"),
	}
	quizzes := map[int]*curriculum.Quiz{
		0: curriculum.NewQuiz(0, "What prints?", [4]string{"hi", "ho", "error", "nothing"}, 0),
	}
	return lessons, quizzes
}

func TestCurriculumRepository_SaveBatchAndList(t *testing.T) {
	repo := NewCurriculumRepository(testDB(t))
	ctx := context.Background()

	lessons, quizzes := seedLessons()
	require.NoError(t, repo.SaveBatch(ctx, lessons, quizzes))

	beginner, err := repo.ListLessons(ctx, curriculum.LevelBeginner)
	require.NoError(t, err)
	require.Len(t, beginner, 2)
	assert.Equal(t, "Intro", beginner[0].Title("en"))
	assert.Equal(t, "Intro (fr)", beginner[0].Title("fr"))
	assert.Equal(t, 1, beginner[0].Ordinal())
	assert.Equal(t, 2, beginner[1].Ordinal())

	advanced, err := repo.ListLessons(ctx, curriculum.LevelAdvanced)
	require.NoError(t, err)
	assert.Empty(t, advanced)
}

func TestCurriculumRepository_SaveBatchIsIdempotentReseed(t *testing.T) {
	repo := NewCurriculumRepository(testDB(t))
	ctx := context.Background()

	lessons, quizzes := seedLessons()
	require.NoError(t, repo.SaveBatch(ctx, lessons, quizzes))
	lessons, quizzes = seedLessons()
	require.NoError(t, repo.SaveBatch(ctx, lessons, quizzes))

	beginner, err := repo.ListLessons(ctx, curriculum.LevelBeginner)
	require.NoError(t, err)
	assert.Len(t, beginner, 2)
}

func TestCurriculumRepository_GetLesson(t *testing.T) {
	repo := NewCurriculumRepository(testDB(t))
	ctx := context.Background()
	lessons, quizzes := seedLessons()
	require.NoError(t, repo.SaveBatch(ctx, lessons, quizzes))

	lesson, err := repo.GetLesson(ctx, curriculum.LevelIntermediate, 1)
	require.NoError(t, err)
	require.NotNil(t, lesson)
	assert.Equal(t, "Classes", lesson.Title("en"))

	lesson, err = repo.GetLesson(ctx, curriculum.LevelBeginner, 99)
	require.NoError(t, err)
	assert.Nil(t, lesson)
}

func TestCurriculumRepository_GetQuiz(t *testing.T) {
	repo := NewCurriculumRepository(testDB(t))
	ctx := context.Background()
	lessons, quizzes := seedLessons()
	require.NoError(t, repo.SaveBatch(ctx, lessons, quizzes))

	// SaveBatch assigns the stored lesson IDs back onto the entities
	quiz, err := repo.GetQuiz(ctx, lessons[0].ID())
	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, "What prints?", quiz.Question())
	assert.Equal(t, [4]string{"hi", "ho", "error", "nothing"}, quiz.Options())
	assert.Equal(t, 0, quiz.CorrectOption())

	// The second lesson has no quiz
	quiz, err = repo.GetQuiz(ctx, lessons[1].ID())
	require.NoError(t, err)
	assert.Nil(t, quiz)
}
