package systemcodes

const (
	Success          = 0
	ErrorCodeGeneric = 1
)
