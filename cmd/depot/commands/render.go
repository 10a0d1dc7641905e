package commands

import (
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/ui/output"
	"go.trai.ch/depot/internal/ui/style"
)

func renderName(out *termenv.Output, id domain.Identity) string {
	return output.Paint(out, id.Name.String(), style.Iris)
}

func renderID(out *termenv.Output, id domain.Identity) string {
	if id.ID == uuid.Nil {
		return output.Paint(out, "-", style.Slate)
	}
	return output.Paint(out, id.ID.String(), style.Slate)
}
