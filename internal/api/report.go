package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/mediacaps/internal/api/models"
	"github.com/smazurov/mediacaps/internal/report"
)

// SnapshotResponse carries a capability snapshot.
type SnapshotResponse struct {
	Body *report.CapsSnapshot
}

// DiffResponse carries the differences between two platforms.
type DiffResponse struct {
	Body *report.DiffReport
}

func (s *Server) registerReportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-report",
		Method:      http.MethodGet,
		Path:        "/api/platforms/{platform}/report",
		Summary:     "Capability Report",
		Description: "Get the full capability table of a platform",
		Tags:        []string{"report"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 500},
	}, func(_ context.Context, input *models.PlatformPath) (*SnapshotResponse, error) {
		sess, err := s.session(input.Platform)
		if err != nil {
			return nil, err
		}
		return &SnapshotResponse{Body: report.Snapshot(sess.Caps)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "diff-platforms",
		Method:      http.MethodGet,
		Path:        "/api/diff",
		Summary:     "Diff Platforms",
		Description: "List the capability differences between two platforms",
		Tags:        []string{"report"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 500},
	}, func(_ context.Context, input *models.DiffRequest) (*DiffResponse, error) {
		from, err := s.session(input.From)
		if err != nil {
			return nil, err
		}
		to, err := s.session(input.To)
		if err != nil {
			return nil, err
		}

		r, err := report.Compare(report.Snapshot(from.Caps), report.Snapshot(to.Caps))
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to diff platforms", err)
		}
		return &DiffResponse{Body: r}, nil
	})
}
