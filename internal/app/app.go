package app

const (
	Name     = "pipecreate"
	Title    = "pipecreate"
	SubTitle = "Create a new pipeline from the pipeline template"
	Author   = "Andrea Grandi"
	License  = "MIT"
)

var Version = "0.1.0"

type App struct {
	Name    string
	Version string
	Author  string
	License string
}

func New() *App {
	return &App{
		Name:    Name,
		Version: Version,
		Author:  Author,
		License: License,
	}
}

func (a *App) GetFullVersion() string {
	return a.Name + " version " + a.Version
}

// CommitMessage is the message of the first commit in a freshly scaffolded pipeline.
func (a *App) CommitMessage() string {
	return "initial template build from " + a.Name + ", version " + a.Version
}
