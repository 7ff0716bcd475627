package app

// RenderState suit une région de page: Idle -> Loading -> {Rendered, Failed}.
// Le hero passe ensuite en Rotating quand la rotation démarre.
type RenderState string

const (
	StateIdle     RenderState = "idle"
	StateLoading  RenderState = "loading"
	StateRendered RenderState = "rendered"
	StateFailed   RenderState = "failed"
	StateRotating RenderState = "rotating"
	// StateSkipped: conteneur absent de la page, rien n'a été fait.
	StateSkipped RenderState = "skipped"
)
