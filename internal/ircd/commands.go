package ircd

import "strings"

// ServerCap is the capability handlers borrow from the connection
// manager for the duration of a single dispatch call. Handlers never
// retain it past Execute returning.
type ServerCap interface {
	Send(id, text string)
	Broadcast(text string)
	Disconnect(id string)
	SetNick(id, nick string)
	GetNick(id string) string
}

// Command is the polymorphic handler capability: a single Execute
// method keyed by uppercased command name in the CommandRegistry. A
// tagged-variant switch would work equally well; an interface is used
// here to keep NICK/MSG/QUIT (and whatever a caller registers later)
// symmetric.
type Command interface {
	Execute(callerID string, tokens []string, cap ServerCap)
}

// CommandRegistry is a case-insensitive name -> Command map, populated
// once at startup and never mutated after Server construction finishes.
type CommandRegistry struct {
	handlers map[string]Command
}

// NewCommandRegistry returns a registry with the three built-ins
// already registered.
func NewCommandRegistry() *CommandRegistry {
	r := &CommandRegistry{handlers: make(map[string]Command)}
	r.Register("NICK", nickCommand{})
	r.Register("MSG", msgCommand{})
	r.Register("QUIT", quitCommand{})
	return r
}

// Register uppercases name and inserts handler into the map.
func (r *CommandRegistry) Register(name string, handler Command) {
	r.handlers[strings.ToUpper(name)] = handler
}

// Dispatch uppercases name, looks it up, and runs it; on a miss it
// replies "Unknown command" to the originator only.
func (r *CommandRegistry) Dispatch(name, callerID string, tokens []string, cap ServerCap) {
	handler, ok := r.handlers[strings.ToUpper(name)]
	if !ok {
		cap.Send(callerID, "Unknown command")
		return
	}
	handler.Execute(callerID, tokens, cap)
}

// SplitCommandLine splits a decoded line into a command name and the
// at-most-two-element token slice the handlers receive: tokens[0] is
// always the command, tokens[1] (if present) is everything after the
// first space, unsplit.
func SplitCommandLine(line string) (name string, tokens []string) {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "", nil
	}
	return parts[0], parts
}

type nickCommand struct{}

func (nickCommand) Execute(callerID string, tokens []string, cap ServerCap) {
	nick := AnonymousNick
	if len(tokens) > 1 && tokens[1] != "" {
		nick = tokens[1]
	}
	cap.SetNick(callerID, nick)
	cap.Send(callerID, "Your nickname is now "+nick)
}

type msgCommand struct{}

func (msgCommand) Execute(callerID string, tokens []string, cap ServerCap) {
	text := "(empty)"
	if len(tokens) > 1 && tokens[1] != "" {
		text = tokens[1]
	}
	nick := cap.GetNick(callerID)
	cap.Broadcast(nick + ": " + text)
}

type quitCommand struct{}

func (quitCommand) Execute(callerID string, tokens []string, cap ServerCap) {
	cap.Send(callerID, "Goodbye!")
	cap.Disconnect(callerID)
}
