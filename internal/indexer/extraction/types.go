package extraction

import "github.com/mvp-joe/fndoc/internal/docmeta"

// Declaration is a located function declaration and its leading comment.
type Declaration struct {
	Name       string
	Location   docmeta.Location
	RawComment string // Empty when no comment immediately precedes the declaration
}

// FileDeclarations holds every declaration located in one source file.
type FileDeclarations struct {
	Language     string
	FilePath     string
	Declarations []Declaration
}
