package manifest

// Config is the root document of a .vordep.yaml manifest.
type Config struct {
	Repo Repo `yaml:"repo"`
}

// Repo holds one project's dependency declaration.
type Repo struct {
	Meta     Meta   `yaml:"meta"`
	Deps     []Dep  `yaml:"deps"`
	Finalize []Step `yaml:"finalize"`
}

// Meta describes the manifest. It carries no behavior.
type Meta struct {
	Name  string   `yaml:"name"`
	Descr string   `yaml:"descr"`
	Tags  []string `yaml:"tags"`
}

// Dep declares one external requirement.
type Dep struct {
	Name    string `yaml:"name"`
	Descr   string `yaml:"descr"`
	Type    string `yaml:"type"`
	URI     string `yaml:"uri"`
	Ref     string `yaml:"ref"`
	Dst     string `yaml:"dst"`
	Recurse string `yaml:"recurse"`
	Build   []Step `yaml:"build"`
}

// Step defines one named build or finalize step.
type Step struct {
	Step  string `yaml:"step"`
	Descr string `yaml:"descr"`
	Exec  *Exec  `yaml:"exec"`
}

// Exec is the external command attached to a step. Args are passed as a
// literal argv, never through a shell.
type Exec struct {
	Cmd        string      `yaml:"cmd"`
	Args       []string    `yaml:"args"`
	EchoAlways *EchoPolicy `yaml:"echo-always"`
}

// EchoPolicy controls whether a successful step's captured streams are echoed.
type EchoPolicy struct {
	Stdout bool `yaml:"stdout"`
	Stderr bool `yaml:"stderr"`
}

// Dependency type tags. Anything else dispatches to the generic variant,
// which never checks successfully.
const (
	TypeBinary  = "bin"
	TypeGit     = "git"
	TypeGitPack = "gitpack"
	TypeZip     = "zip"
	TypeTarGz   = "tgz"
	TypeTarXz   = "txz"
	TypeTarZst  = "tzst"
)
