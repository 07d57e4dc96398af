package queries

import "context"

type AdminQueries interface {
	Dashboard(ctx context.Context) (*DashboardView, error)
}

type DashboardViewRepo interface {
	Aggregate(ctx context.Context) (*DashboardView, error)
}

type adminQueriesImpl struct {
	repo DashboardViewRepo
}

func NewAdminQueries(repo DashboardViewRepo) AdminQueries {
	return &adminQueriesImpl{repo: repo}
}

func (q *adminQueriesImpl) Dashboard(ctx context.Context) (*DashboardView, error) {
	return q.repo.Aggregate(ctx)
}
