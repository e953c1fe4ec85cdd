package domain

type CommandType string

const (
	CommandAsk     CommandType = "ask"
	CommandHelp    CommandType = "help"
	CommandExit    CommandType = "exit"
	CommandEmpty   CommandType = "empty"
	CommandUnknown CommandType = "unknown"
)

func (c CommandType) String() string {
	return string(c)
}

func (c CommandType) IsValid() bool {
	switch c {
	case CommandAsk, CommandHelp, CommandExit, CommandEmpty, CommandUnknown:
		return true
	default:
		return false
	}
}

// ParsedCommand is one line of user input mapped to a command.
type ParsedCommand struct {
	Type       CommandType
	Params     map[string]any
	RawMessage string
}

// Question returns the question parameter of an ask command.
func (p *ParsedCommand) Question() string {
	if p == nil || p.Params == nil {
		return ""
	}
	q, _ := p.Params["question"].(string)
	return q
}
