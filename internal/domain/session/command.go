package session

// Command identifies a recognized navigation action. Inbound text is
// resolved to a Command before any dispatch decision; localized button
// labels are only ever used for rendering, never for control flow.
type Command string

const (
	CommandLearn    Command = "learn"
	CommandProgress Command = "progress"
	CommandLanguage Command = "language"
	CommandSandbox  Command = "sandbox"
	CommandHelp     Command = "help"
	CommandBack     Command = "back"
	CommandHome     Command = "home"
)
