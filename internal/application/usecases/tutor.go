package usecases

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"python-tutor-bot/internal/domain/curriculum"
	"python-tutor-bot/internal/domain/locale"
	"python-tutor-bot/internal/domain/progress"
	"python-tutor-bot/internal/domain/sandbox"
	"python-tutor-bot/internal/domain/session"
	"python-tutor-bot/internal/domain/user"
)

// TutorUseCase is the session state machine: it consumes one inbound text
// per call and produces the reply, the next keyboard and the next session
// mode. Callers must serialize calls per user id; different users may call
// concurrently.
type TutorUseCase struct {
	users          *UserUseCase
	userRepo       user.Repository
	curriculumRepo curriculum.Repository
	sessions       *session.Store
	texts          locale.Service
	runner         sandbox.Runner
	sandboxTimeout time.Duration
}

// NewTutorUseCase creates the tutor state machine
func NewTutorUseCase(
	users *UserUseCase,
	userRepo user.Repository,
	curriculumRepo curriculum.Repository,
	sessions *session.Store,
	texts locale.Service,
	runner sandbox.Runner,
	sandboxTimeout time.Duration,
) *TutorUseCase {
	return &TutorUseCase{
		users:          users,
		userRepo:       userRepo,
		curriculumRepo: curriculumRepo,
		sessions:       sessions,
		texts:          texts,
		runner:         runner,
		sandboxTimeout: sandboxTimeout,
	}
}

// Start resets the user to the menu and returns the welcome reply
func (uc *TutorUseCase) Start(ctx context.Context, userID user.ID) (*session.Reply, error) {
	u, err := uc.users.GetOrCreateUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.sessions.Reset(userID)

	text := uc.texts.Text(u.Language(), locale.KeyWelcome) + "\n\n" +
		uc.texts.Text(u.Language(), locale.KeyMenu)
	return &session.Reply{Text: text, Keyboard: uc.mainMenuKeyboard(u.Language())}, nil
}

// Help returns the localized help reply without changing state
func (uc *TutorUseCase) Help(ctx context.Context, userID user.ID) (*session.Reply, error) {
	u, err := uc.users.GetOrCreateUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &session.Reply{
		Text:     uc.texts.Text(u.Language(), locale.KeyHelp),
		Keyboard: uc.mainMenuKeyboard(u.Language()),
	}, nil
}

// HandleText runs one state machine transition for the given user input.
// Input is untrusted free text; it is only ever executed inside the sandbox
// path, and only while the user is in sandbox mode.
func (uc *TutorUseCase) HandleText(ctx context.Context, userID user.ID, text string) (*session.Reply, error) {
	u, err := uc.users.GetOrCreateUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess := uc.sessions.Get(userID)

	// Quiz and sandbox modes own their input completely: quiz scores
	// everything as an answer, sandbox executes everything except Home.
	switch sess.Mode() {
	case session.ModeQuiz:
		return uc.handleQuizAnswer(ctx, u, sess, text)
	case session.ModeSandbox:
		return uc.handleSandboxInput(ctx, u, sess, text)
	}

	// Global navigation, recognized in every remaining mode
	if cmd, ok := uc.texts.Command(u.Language(), text); ok {
		switch cmd {
		case session.CommandBack, session.CommandHome:
			return uc.toMenu(u, sess)
		case session.CommandLanguage:
			return uc.languageKeyboardReply(u)
		}
	}
	if lang, ok := user.ParseLanguage(text); ok {
		return uc.changeLanguage(ctx, u, sess, lang)
	}

	switch sess.Mode() {
	case session.ModeLevelSelect:
		return uc.handleLevelSelect(ctx, u, sess, text)
	case session.ModeLessonList:
		return uc.handleLessonSelect(ctx, u, sess, text)
	default:
		return uc.handleMenu(ctx, u, sess, text)
	}
}

// handleMenu dispatches menu-mode commands
func (uc *TutorUseCase) handleMenu(ctx context.Context, u *user.User, sess *session.Session, text string) (*session.Reply, error) {
	cmd, ok := uc.texts.Command(u.Language(), text)
	if !ok {
		// Explicit fallback branch, not an error
		return &session.Reply{Text: uc.texts.Text(u.Language(), locale.KeyFallback, text)}, nil
	}

	switch cmd {
	case session.CommandLearn:
		sess.SetMode(session.ModeLevelSelect)
		return &session.Reply{
			Text:     uc.texts.Text(u.Language(), locale.KeyChooseLevel),
			Keyboard: uc.levelKeyboard(u),
		}, nil

	case session.CommandProgress:
		return uc.progressReport(ctx, u)

	case session.CommandSandbox:
		sess.SetMode(session.ModeSandbox)
		secs := int(uc.sandboxTimeout / time.Second)
		return &session.Reply{
			Text:     uc.texts.Text(u.Language(), locale.KeySandboxIntro, secs),
			Keyboard: uc.sandboxKeyboard(u.Language()),
		}, nil

	case session.CommandHelp:
		return &session.Reply{Text: uc.texts.Text(u.Language(), locale.KeyHelp)}, nil

	default:
		return &session.Reply{Text: uc.texts.Text(u.Language(), locale.KeyFallback, text)}, nil
	}
}

// handleLevelSelect persists a chosen level and lists its lessons
func (uc *TutorUseCase) handleLevelSelect(ctx context.Context, u *user.User, sess *session.Session, text string) (*session.Reply, error) {
	level, ok := curriculum.ParseLevel(text)
	if !ok {
		return &session.Reply{Text: uc.texts.Text(u.Language(), locale.KeyFallback, text)}, nil
	}

	if err := uc.userRepo.UpdateLevel(ctx, u.ID(), level); err != nil {
		return nil, fmt.Errorf("failed to persist level: %w", err)
	}
	u.SetLevel(level)

	sess.SetMode(session.ModeLessonList)
	return uc.lessonListReply(ctx, u)
}

// handleLessonSelect resolves an unlocked lesson title to its content and,
// when the lesson has a quiz, presents it and enters quiz mode
func (uc *TutorUseCase) handleLessonSelect(ctx context.Context, u *user.User, sess *session.Session, text string) (*session.Reply, error) {
	lessons, err := uc.curriculumRepo.ListLessons(ctx, u.Level())
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}

	input := strings.TrimSpace(text)
	var chosen *curriculum.Lesson
	for _, lesson := range lessons {
		if lesson.Title(string(u.Language())) == input {
			chosen = lesson
			break
		}
	}
	if chosen == nil {
		// Locked labels carry a lock prefix and resolve nowhere: inert
		return &session.Reply{Text: uc.texts.Text(u.Language(), locale.KeyFallback, text)}, nil
	}

	// A locked lesson's undecorated title must not resolve either
	if !progress.IsUnlocked(chosen.Ordinal(), u.Progress()) {
		return &session.Reply{Text: uc.texts.Text(u.Language(), locale.KeyLessonLocked)}, nil
	}

	content := uc.texts.Text(u.Language(), locale.KeyLessonContent,
		chosen.Title(string(u.Language())), chosen.Explanation(), chosen.Example())

	quiz, err := uc.curriculumRepo.GetQuiz(ctx, chosen.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}
	if quiz == nil {
		// No quiz: emit the content and stay in the lesson list
		return &session.Reply{Text: content}, nil
	}

	sess.BeginQuiz(session.PendingQuiz{
		LessonID:      chosen.ID(),
		Level:         chosen.Level(),
		LessonOrdinal: chosen.Ordinal(),
		CorrectOption: quiz.CorrectOption(),
	})

	options := quiz.Options()
	quizText := fmt.Sprintf("%s\n\nA) %s\nB) %s\nC) %s\nD) %s",
		quiz.Question(), options[0], options[1], options[2], options[3])

	return &session.Reply{
		Text:     content + "\n\n" + uc.texts.Text(u.Language(), locale.KeyQuizIntro, quizText),
		Keyboard: uc.quizKeyboard(options),
	}, nil
}

// handleQuizAnswer scores quiz-mode input. One attempt per presentation:
// both outcomes clear the pending quiz and return to the menu. Any input
// that is not an option letter scores as incorrect, including navigation
// commands.
func (uc *TutorUseCase) handleQuizAnswer(ctx context.Context, u *user.User, sess *session.Session, text string) (*session.Reply, error) {
	pending := sess.PendingQuiz()
	if pending == nil {
		// Restart race: quiz mode with no pending context. Recover to menu.
		log.Printf("user %d: quiz mode without pending quiz, recovering", u.ID())
		sess.ResolveQuiz()
		return &session.Reply{
			Text:     uc.texts.Text(u.Language(), locale.KeyQuizIncorrect),
			Keyboard: uc.mainMenuKeyboard(u.Language()),
		}, nil
	}

	choice, ok := parseQuizChoice(text)
	correct := ok && choice == pending.CorrectOption

	sess.ResolveQuiz()

	if !correct {
		return &session.Reply{
			Text:     uc.texts.Text(u.Language(), locale.KeyQuizIncorrect),
			Keyboard: uc.mainMenuKeyboard(u.Language()),
		}, nil
	}

	applied, err := uc.userRepo.ApplyQuizSuccess(ctx, u.ID(), pending.Level, pending.LessonOrdinal)
	if err != nil {
		return nil, fmt.Errorf("failed to record quiz success: %w", err)
	}
	if !applied {
		// Retaken quiz of an already-completed lesson; no extra credit
		log.Printf("user %d: quiz for lesson %s/%d already credited", u.ID(), pending.Level, pending.LessonOrdinal)
	}

	return &session.Reply{
		Text:     uc.texts.Text(u.Language(), locale.KeyQuizCorrect),
		Keyboard: uc.mainMenuKeyboard(u.Language()),
	}, nil
}

// handleSandboxInput forwards everything except Home to the sandbox runner
func (uc *TutorUseCase) handleSandboxInput(ctx context.Context, u *user.User, sess *session.Session, text string) (*session.Reply, error) {
	if cmd, ok := uc.texts.Command(u.Language(), text); ok && cmd == session.CommandHome {
		return uc.toMenu(u, sess)
	}

	result, err := uc.runner.Run(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("sandbox run failed: %w", err)
	}

	secs := int(uc.sandboxTimeout / time.Second)
	switch {
	case result.TimedOut:
		return &session.Reply{Text: uc.texts.Text(u.Language(), locale.KeySandboxTimeout, secs)}, nil
	case result.Empty():
		return &session.Reply{Text: uc.texts.Text(u.Language(), locale.KeySandboxNoOutput)}, nil
	}

	output := result.Stdout + result.Stderr
	if result.Truncated {
		output += "\n" + uc.texts.Text(u.Language(), locale.KeySandboxTruncated)
	}
	return &session.Reply{Text: output, Monospace: true}, nil
}

// changeLanguage persists the new language and re-renders the menu in it
func (uc *TutorUseCase) changeLanguage(ctx context.Context, u *user.User, sess *session.Session, lang user.Language) (*session.Reply, error) {
	if err := uc.userRepo.UpdateLanguage(ctx, u.ID(), lang); err != nil {
		return nil, fmt.Errorf("failed to persist language: %w", err)
	}
	u.SetLanguage(lang)

	sess.SetMode(session.ModeMenu)
	text := uc.texts.Text(lang, locale.KeyWelcome) + "\n\n" + uc.texts.Text(lang, locale.KeyMenu)
	return &session.Reply{Text: text, Keyboard: uc.mainMenuKeyboard(lang)}, nil
}

// progressReport renders the user's completion of their active level
func (uc *TutorUseCase) progressReport(ctx context.Context, u *user.User) (*session.Reply, error) {
	lessons, err := uc.curriculumRepo.ListLessons(ctx, u.Level())
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}

	pct := progress.CompletionPercent(u.Progress(), len(lessons))
	text := uc.texts.Text(u.Language(), locale.KeyProgressReport,
		displayLevel(u.Level()), u.Progress(), pct)

	return &session.Reply{Text: text}, nil
}

// lessonListReply renders the lesson list of the user's active level
func (uc *TutorUseCase) lessonListReply(ctx context.Context, u *user.User) (*session.Reply, error) {
	lessons, err := uc.curriculumRepo.ListLessons(ctx, u.Level())
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}

	lang := u.Language()

	nav := session.Row(
		session.Button{Label: uc.texts.CommandLabel(lang, session.CommandBack), Command: session.CommandBack},
		session.Button{Label: uc.texts.CommandLabel(lang, session.CommandHome), Command: session.CommandHome},
		session.Button{Label: uc.texts.CommandLabel(lang, session.CommandLanguage), Command: session.CommandLanguage},
	)

	var buttons []session.Button
	for _, lesson := range lessons {
		title := lesson.Title(string(lang))
		if !progress.IsUnlocked(lesson.Ordinal(), u.Progress()) {
			title = "🔒 " + title
		}
		buttons = append(buttons, session.Button{Label: title})
	}

	rows := [][]session.Button{nav}
	for i := 0; i < len(buttons); i += 2 {
		end := i + 2
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}

	return &session.Reply{
		Text:     uc.texts.Text(lang, locale.KeyLessonsList, displayLevel(u.Level())),
		Keyboard: &session.Keyboard{Rows: rows},
	}, nil
}

// toMenu resets the session to the menu and re-renders it
func (uc *TutorUseCase) toMenu(u *user.User, sess *session.Session) (*session.Reply, error) {
	sess.SetMode(session.ModeMenu)
	text := uc.texts.Text(u.Language(), locale.KeyWelcome) + "\n\n" +
		uc.texts.Text(u.Language(), locale.KeyMenu)
	return &session.Reply{Text: text, Keyboard: uc.mainMenuKeyboard(u.Language())}, nil
}

// languageKeyboardReply shows the language picker without changing mode
func (uc *TutorUseCase) languageKeyboardReply(u *user.User) (*session.Reply, error) {
	var rows [][]session.Button
	for _, lang := range user.Languages() {
		rows = append(rows, session.Row(session.Button{Label: uc.texts.LanguageLabel(lang)}))
	}

	return &session.Reply{
		Text:     uc.texts.Text(u.Language(), locale.KeyChooseLanguage),
		Keyboard: &session.Keyboard{Rows: rows, OneTime: true},
	}, nil
}

// mainMenuKeyboard builds the main menu in the given language
func (uc *TutorUseCase) mainMenuKeyboard(lang user.Language) *session.Keyboard {
	return session.NewKeyboard(
		session.Row(
			session.Button{Label: uc.texts.CommandLabel(lang, session.CommandLearn), Command: session.CommandLearn},
			session.Button{Label: uc.texts.CommandLabel(lang, session.CommandProgress), Command: session.CommandProgress},
		),
		session.Row(
			session.Button{Label: uc.texts.CommandLabel(lang, session.CommandLanguage), Command: session.CommandLanguage},
			session.Button{Label: uc.texts.CommandLabel(lang, session.CommandSandbox), Command: session.CommandSandbox},
		),
		session.Row(
			session.Button{Label: uc.texts.CommandLabel(lang, session.CommandHelp), Command: session.CommandHelp},
		),
	)
}

// levelKeyboard decorates each level with its reached/locked glyph. The
// glyph is decoration only; selection is never gated on it.
func (uc *TutorUseCase) levelKeyboard(u *user.User) *session.Keyboard {
	lessonsPerLevel := 5
	var rows [][]session.Button
	for _, level := range curriculum.Levels() {
		glyph := "🔒"
		if u.Progress() >= level.Index()*lessonsPerLevel {
			glyph = "✅"
		}
		rows = append(rows, session.Row(session.Button{
			Label: fmt.Sprintf("%s %s", glyph, displayLevel(level)),
		}))
	}
	return &session.Keyboard{Rows: rows}
}

// sandboxKeyboard offers only the way home
func (uc *TutorUseCase) sandboxKeyboard(lang user.Language) *session.Keyboard {
	return session.NewKeyboard(session.Row(
		session.Button{Label: uc.texts.CommandLabel(lang, session.CommandHome), Command: session.CommandHome},
	))
}

// quizKeyboard lays the four options out in two rows. The answer is scored
// on the leading letter, so a tapped "B) ..." label and a typed "b" are the
// same choice.
func (uc *TutorUseCase) quizKeyboard(options [4]string) *session.Keyboard {
	return session.NewKeyboard(
		session.Row(
			session.Button{Label: "A) " + options[0]},
			session.Button{Label: "B) " + options[1]},
		),
		session.Row(
			session.Button{Label: "C) " + options[2]},
			session.Button{Label: "D) " + options[3]},
		),
	)
}

// parseQuizChoice maps input to a 0-based option index by its first letter,
// case-insensitively: A–D and a–d are accepted, everything else is not a
// choice.
func parseQuizChoice(text string) (int, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}
	letter := unicode.ToUpper(rune(trimmed[0]))
	if letter < 'A' || letter > 'D' {
		return 0, false
	}
	// Reject longer words that merely start with an option letter ("Aide")
	if len(trimmed) > 1 && trimmed[1] != ')' && trimmed[1] != '.' && trimmed[1] != ' ' {
		return 0, false
	}
	return int(letter - 'A'), true
}

// displayLevel renders a canonical level name with a leading capital
func displayLevel(level curriculum.Level) string {
	s := string(level)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
