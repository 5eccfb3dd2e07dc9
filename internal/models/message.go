package models

// Role identifies who authored a Message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation history
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// WelcomeMessage is the assistant greeting every conversation starts with
const WelcomeMessage = "👋 Hi! I'm your AI assistant. I can help you with:\n\n" +
	"- Writing and explaining code\n" +
	"- Answering technical questions\n" +
	"- Solving programming problems\n" +
	"- Providing coding tips and best practices\n\n" +
	"What would you like to know?"

// NewUserMessage creates a user Message
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant Message
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// IsUser reports whether the message was written by the user
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}
