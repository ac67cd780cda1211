package deleteexpiredcodes

import (
	"context"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/logging"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	Count int64
}

// service is a housekeeping sweep. Activation checks expiry on its own, so
// the sweep only reclaims storage and can run on any schedule.
type service struct {
	log            logging.Logger
	codeRepository user.ActivationCodeRepository
	now            func() time.Time
}

func New(
	log logging.Logger,
	codeRepository user.ActivationCodeRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if codeRepository == nil {
		panic(e.NewNilArgumentError("codeRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		codeRepository: codeRepository,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	count, err := s.codeRepository.DeleteExpired(ctx, s.now())
	if err != nil {
		s.log.Error(ctx, "Could not delete expired activation codes.", logging.Entry("err", err))
		return result, err
	}
	if count > 0 {
		s.log.Info(
			ctx,
			"Expired activation codes have been deleted.",
			logging.Entry("count", count),
		)
	}
	return Result{Count: count}, nil
}
