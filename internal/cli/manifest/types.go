package manifest

import pkgmanifest "github.com/pirakansa/vordep/pkg/manifest"

type Config = pkgmanifest.Config
type Repo = pkgmanifest.Repo
type Meta = pkgmanifest.Meta
type Dep = pkgmanifest.Dep
type Step = pkgmanifest.Step
type Exec = pkgmanifest.Exec
type EchoPolicy = pkgmanifest.EchoPolicy

const (
	FileName = pkgmanifest.FileName

	TypeBinary  = pkgmanifest.TypeBinary
	TypeGit     = pkgmanifest.TypeGit
	TypeGitPack = pkgmanifest.TypeGitPack
	TypeZip     = pkgmanifest.TypeZip
	TypeTarGz   = pkgmanifest.TypeTarGz
	TypeTarXz   = pkgmanifest.TypeTarXz
	TypeTarZst  = pkgmanifest.TypeTarZst

	SchemePath  = pkgmanifest.SchemePath
	SchemeFile  = pkgmanifest.SchemeFile
	SchemeHTTP  = pkgmanifest.SchemeHTTP
	SchemeHTTPS = pkgmanifest.SchemeHTTPS
	SchemeDir   = pkgmanifest.SchemeDir
)

func SplitScheme(value string) (string, string, bool) {
	return pkgmanifest.SplitScheme(value)
}

func StripRefScheme(ref string) string {
	return pkgmanifest.StripRefScheme(ref)
}

func IsRemoteLocation(value string) bool {
	return pkgmanifest.IsRemoteLocation(value)
}
