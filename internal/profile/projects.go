package profile

// DefaultProjectsCount is how many projects the home page shows before
// "See more..".
const DefaultProjectsCount = 2

type Project struct {
	Title       string
	Description string
	Video       string
	Image       string
	Repo        string
	Demo        string
}

var Projects = []Project{
	{
		Title:       "AI CLI",
		Description: "A command-line chat client for OpenAI models with streaming responses and conversation history.",
		Image:       "/images/projects/ai-cli.png",
		Repo:        "https://github.com/sherbolotarbaev/ai-cli",
	},
	{
		Title:       "Median API",
		Description: "A REST API for a simple Medium clone built with NestJS, Prisma and PostgreSQL, documented with Swagger.",
		Image:       "/images/projects/median.png",
		Repo:        "https://github.com/sherbolotarbaev/simple-medium-clone-api",
	},
	{
		Title:       "ChatGPT Microservice",
		Description: "A NestJS microservice wrapping the OpenAI API behind a message-based transport.",
		Video:       "/videos/projects/chatgpt-microservice.mp4",
		Repo:        "https://github.com/sherbolotarbaev/nestjs-openai-chatgpt-microservice",
	},
	{
		Title:       "Portfolio",
		Description: "This site: server-rendered with Go, Gin and goldmark, with highlighted code blocks and a small admin dashboard.",
		Repo:        "https://github.com/sherbolotarbaev/portfolio",
	},
}

// VisibleProjects returns the projects shown on the page. Without all only
// the first DefaultProjectsCount are shown.
func VisibleProjects(projects []Project, all bool) []Project {
	if all || len(projects) <= DefaultProjectsCount {
		return projects
	}
	return projects[:DefaultProjectsCount]
}

// HasMoreProjects reports whether the "See more.." toggle is needed.
func HasMoreProjects(projects []Project) bool {
	return len(projects) > DefaultProjectsCount
}
