package answer

import "strings"

// SystemPrompt is sent to backends that take a separate system instruction.
const SystemPrompt = "You are a helpful assistant that answers questions about documents. " +
	"Use the provided document context to answer questions accurately."

const instruction = "Please answer the user's question based on the document context provided above.\n" +
	"Be concise, accurate, and helpful. If the answer cannot be determined from the\n" +
	"document context, please state that clearly."

// ComposePrompt joins the context block, the question and the fixed
// answering instruction, each separated by a blank line.
func ComposePrompt(documentContext, question string) string {
	var sb strings.Builder
	sb.WriteString(documentContext)
	sb.WriteString("\n\nUser Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\n")
	sb.WriteString(instruction)
	return sb.String()
}
