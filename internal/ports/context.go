package ports

type ctxKey string

// CtxUserID carries the acting user's id through an import run; every audit
// entry written during the run is attributed to it.
const CtxUserID ctxKey = "user_id"
