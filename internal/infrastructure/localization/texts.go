package localization

import (
	"python-tutor-bot/internal/domain/locale"
	"python-tutor-bot/internal/domain/session"
	"python-tutor-bot/internal/domain/user"
)

// commandLabels maps each language to the rendered label of every
// navigation command. Labels are what the keyboard shows; dispatch always
// goes through the canonical session.Command.
var commandLabels = map[user.Language]map[session.Command]string{
	user.LanguageEnglish: {
		session.CommandLearn:    "📘 Learn Python",
		session.CommandProgress: "🧪 My Progress",
		session.CommandLanguage: "🌐 Change Language",
		session.CommandSandbox:  "💻 Try Python (IDE)",
		session.CommandHelp:     "📋 Help",
		session.CommandBack:     "🔙 Back",
		session.CommandHome:     "🏠 Home",
	},
	user.LanguageFrench: {
		session.CommandLearn:    "📘 Apprendre Python",
		session.CommandProgress: "🧪 Mon Progrès",
		session.CommandLanguage: "🌐 Changer de langue",
		session.CommandSandbox:  "💻 Essayer Python (IDE)",
		session.CommandHelp:     "📋 Aide",
		session.CommandBack:     "🔙 Retour",
		session.CommandHome:     "🏠 Accueil",
	},
	user.LanguageArabic: {
		session.CommandLearn:    "📘 تعلم بايثون",
		session.CommandProgress: "🧪 تقدمي",
		session.CommandLanguage: "🌐 تغيير اللغة",
		session.CommandSandbox:  "💻 جرب بايثون",
		session.CommandHelp:     "📋 مساعدة",
		session.CommandBack:     "🔙 العودة",
		session.CommandHome:     "🏠 الرئيسية",
	},
}

// messages maps each language to its message catalog. Placeholders use
// fmt verbs and are filled by Service.Text.
var messages = map[user.Language]map[string]string{
	user.LanguageEnglish: {
		locale.KeyWelcome:          "Welcome to Ija T3alllem Python!",
		locale.KeyMenu:             "Choose an option:",
		locale.KeyChooseLevel:      "Choose your level:",
		locale.KeyChooseLanguage:   "Choose your language:",
		locale.KeyLessonsList:      "📚 Lessons for %s:",
		locale.KeyLessonContent:    "📖 %s\n\n%s\n\n💡 Example:\n%s",
		locale.KeyLessonLocked:     "🔒 Locked - Complete previous lessons",
		locale.KeyQuizIntro:        "🧪 Quiz time!\n\n%s",
		locale.KeyQuizCorrect:      "✅ Correct! Lesson complete — the next lesson is unlocked.",
		locale.KeyQuizIncorrect:    "❌ Not quite. Reopen the lesson and try the quiz again.",
		locale.KeyProgressReport:   "🧪 Your progress\n\nLevel: %s\nQuizzes passed: %d\nLevel completion: %d%%",
		locale.KeySandboxIntro:     "💻 Python sandbox. Send me code and I will run it.\nUp to %d seconds per run. Send 🏠 Home to leave.",
		locale.KeySandboxNoOutput:  "✅ Ran successfully, no output.",
		locale.KeySandboxTimeout:   "⏱ Your code ran longer than %d seconds and was stopped.",
		locale.KeySandboxTruncated: "…(output truncated)",
		locale.KeyFallback:         "You selected: %s",
		locale.KeyErrorRetry:       "Something went wrong on our side. Please try again.",
		locale.KeyReminder:         "👋 Your Python lessons are waiting — come back and keep learning!",
		locale.KeyHelp: "📋 Help\n\n" +
			"📘 Learn Python — browse levels and lessons\n" +
			"🧪 My Progress — your quiz score and completion\n" +
			"💻 Try Python (IDE) — run Python code in a sandbox\n" +
			"🌐 Change Language — switch between EN, FR and AR\n\n" +
			"Each lesson ends with a quiz. Pass it to unlock the next lesson.",
	},
	user.LanguageFrench: {
		locale.KeyWelcome:          "Bienvenue à Ija T3alllem Python!",
		locale.KeyMenu:             "Choisissez une option:",
		locale.KeyChooseLevel:      "Choisissez votre niveau:",
		locale.KeyChooseLanguage:   "Choisissez votre langue:",
		locale.KeyLessonsList:      "📚 Leçons pour %s:",
		locale.KeyLessonContent:    "📖 %s\n\n%s\n\n💡 Exemple:\n%s",
		locale.KeyLessonLocked:     "🔒 Verrouillé - Terminez les leçons précédentes",
		locale.KeyQuizIntro:        "🧪 Quiz!\n\n%s",
		locale.KeyQuizCorrect:      "✅ Correct! Leçon terminée — la leçon suivante est débloquée.",
		locale.KeyQuizIncorrect:    "❌ Pas tout à fait. Rouvrez la leçon et réessayez le quiz.",
		locale.KeyProgressReport:   "🧪 Votre progrès\n\nNiveau: %s\nQuiz réussis: %d\nAvancement du niveau: %d%%",
		locale.KeySandboxIntro:     "💻 Bac à sable Python. Envoyez du code et je l'exécute.\nJusqu'à %d secondes par exécution. Envoyez 🏠 Accueil pour sortir.",
		locale.KeySandboxNoOutput:  "✅ Exécuté avec succès, aucune sortie.",
		locale.KeySandboxTimeout:   "⏱ Votre code a dépassé %d secondes et a été arrêté.",
		locale.KeySandboxTruncated: "…(sortie tronquée)",
		locale.KeyFallback:         "Vous avez sélectionné: %s",
		locale.KeyErrorRetry:       "Une erreur s'est produite de notre côté. Veuillez réessayer.",
		locale.KeyReminder:         "👋 Vos leçons Python vous attendent — revenez apprendre!",
		locale.KeyHelp: "📋 Aide\n\n" +
			"📘 Apprendre Python — parcourir les niveaux et les leçons\n" +
			"🧪 Mon Progrès — votre score et votre avancement\n" +
			"💻 Essayer Python (IDE) — exécuter du code dans un bac à sable\n" +
			"🌐 Changer de langue — EN, FR ou AR\n\n" +
			"Chaque leçon se termine par un quiz. Réussissez-le pour débloquer la suivante.",
	},
	user.LanguageArabic: {
		locale.KeyWelcome:          "مرحبًا بك في Ija T3alllem Python!",
		locale.KeyMenu:             "اختر خيارًا:",
		locale.KeyChooseLevel:      "اختر مستواك:",
		locale.KeyChooseLanguage:   "اختر لغتك:",
		locale.KeyLessonsList:      "📚 الدروس لـ %s:",
		locale.KeyLessonContent:    "📖 %s\n\n%s\n\n💡 مثال:\n%s",
		locale.KeyLessonLocked:     "🔒 مغلق - أكمل الدروس السابقة",
		locale.KeyQuizIntro:        "🧪 وقت الاختبار!\n\n%s",
		locale.KeyQuizCorrect:      "✅ إجابة صحيحة! اكتمل الدرس — تم فتح الدرس التالي.",
		locale.KeyQuizIncorrect:    "❌ إجابة غير صحيحة. أعد فتح الدرس وحاول مرة أخرى.",
		locale.KeyProgressReport:   "🧪 تقدمك\n\nالمستوى: %s\nالاختبارات الناجحة: %d\nنسبة إكمال المستوى: %d%%",
		locale.KeySandboxIntro:     "💻 بيئة بايثون التجريبية. أرسل الكود وسأقوم بتشغيله.\nحتى %d ثوانٍ لكل تشغيل. أرسل 🏠 الرئيسية للخروج.",
		locale.KeySandboxNoOutput:  "✅ تم التشغيل بنجاح، لا يوجد إخراج.",
		locale.KeySandboxTimeout:   "⏱ تجاوز الكود %d ثوانٍ وتم إيقافه.",
		locale.KeySandboxTruncated: "…(تم اقتطاع الإخراج)",
		locale.KeyFallback:         "لقد اخترت: %s",
		locale.KeyErrorRetry:       "حدث خطأ من جهتنا. يرجى المحاولة مرة أخرى.",
		locale.KeyReminder:         "👋 دروس بايثون في انتظارك — عد وتابع التعلم!",
		locale.KeyHelp: "📋 مساعدة\n\n" +
			"📘 تعلم بايثون — تصفح المستويات والدروس\n" +
			"🧪 تقدمي — نتيجتك ونسبة الإكمال\n" +
			"💻 جرب بايثون — شغّل الكود في بيئة معزولة\n" +
			"🌐 تغيير اللغة — EN أو FR أو AR\n\n" +
			"كل درس ينتهي باختبار. اجتزه لفتح الدرس التالي.",
	},
}

// languageFlags decorates the language picker buttons
var languageFlags = map[user.Language]string{
	user.LanguageEnglish: "🇬🇧",
	user.LanguageFrench:  "🇫🇷",
	user.LanguageArabic:  "🇹🇳",
}
