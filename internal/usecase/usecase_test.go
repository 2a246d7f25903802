package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) List(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) SoftDelete(ctx context.Context, id, actorID string) error {
	return m.Called(ctx, id, actorID).Error(0)
}

func (m *MockCandidateRepo) Restore(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateRepo) HardDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Interview, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	return m.Called(ctx, iv).Error(0)
}

func (m *MockInterviewRepo) Update(ctx context.Context, iv *domain.Interview) error {
	return m.Called(ctx, iv).Error(0)
}

type MockOfferRepo struct {
	mock.Mock
}

func (m *MockOfferRepo) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferRepo) GetActiveByCandidate(ctx context.Context, candidateID string) (*domain.Offer, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Offer, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}

func (m *MockOfferRepo) Create(ctx context.Context, o *domain.Offer) error {
	return m.Called(ctx, o).Error(0)
}

type MockConsultantRepo struct {
	mock.Mock
}

func (m *MockConsultantRepo) GetByID(ctx context.Context, id string) (*domain.Consultant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consultant), args.Error(1)
}

func (m *MockConsultantRepo) GetByCandidateID(ctx context.Context, candidateID string) (*domain.Consultant, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consultant), args.Error(1)
}

func (m *MockConsultantRepo) ExistsForCandidate(ctx context.Context, candidateID string) (bool, error) {
	args := m.Called(ctx, candidateID)
	return args.Bool(0), args.Error(1)
}

func (m *MockConsultantRepo) List(ctx context.Context, status domain.ConsultantStatus) ([]domain.Consultant, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Consultant), args.Error(1)
}

type MockHrTicketRepo struct {
	mock.Mock
}

func (m *MockHrTicketRepo) GetByID(ctx context.Context, id string) (*domain.HrTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HrTicket), args.Error(1)
}

func (m *MockHrTicketRepo) GetOpenByOffer(ctx context.Context, offerID string) (*domain.HrTicket, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HrTicket), args.Error(1)
}

func (m *MockHrTicketRepo) List(ctx context.Context, status domain.HrTicketStatus) ([]domain.HrTicket, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HrTicket), args.Error(1)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepo) Update(ctx context.Context, c *domain.Company) error {
	return m.Called(ctx, c).Error(0)
}

type MockRequirementRepo struct {
	mock.Mock
}

func (m *MockRequirementRepo) GetByID(ctx context.Context, id string) (*domain.Requirement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Requirement), args.Error(1)
}

func (m *MockRequirementRepo) List(ctx context.Context, status domain.RequirementStatus) ([]domain.Requirement, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Requirement), args.Error(1)
}

func (m *MockRequirementRepo) Create(ctx context.Context, r *domain.Requirement) error {
	return m.Called(ctx, r).Error(0)
}

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepo) GetByRequirementID(ctx context.Context, requirementID string) (*domain.Project, error) {
	args := m.Called(ctx, requirementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

type MockMissionRepo struct {
	mock.Mock
}

func (m *MockMissionRepo) GetByID(ctx context.Context, id string) (*domain.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionRepo) ListByConsultant(ctx context.Context, consultantID string) ([]domain.Mission, error) {
	args := m.Called(ctx, consultantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mission), args.Error(1)
}

func (m *MockMissionRepo) List(ctx context.Context, status domain.MissionStatus) ([]domain.Mission, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mission), args.Error(1)
}

type MockApprovalRepo struct {
	mock.Mock
}

func (m *MockApprovalRepo) GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepo) ListByConsultant(ctx context.Context, consultantID string) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, consultantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepo) ListPending(ctx context.Context, status domain.ApprovalStatus) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepo) Create(ctx context.Context, r *domain.ApprovalRequest) error {
	return m.Called(ctx, r).Error(0)
}

// fakeCommitter records every committed change set for inspection
type fakeCommitter struct {
	committed []domain.ChangeSet
	fail      error
}

func (f *fakeCommitter) Commit(ctx context.Context, cs domain.ChangeSet) error {
	if f.fail != nil {
		return f.fail
	}
	f.committed = append(f.committed, cs)
	return nil
}

func (f *fakeCommitter) last() domain.ChangeSet {
	return f.committed[len(f.committed)-1]
}

type fakeNotifier struct {
	subjects []string
}

func (f *fakeNotifier) Notify(subject string, lines ...string) {
	f.subjects = append(f.subjects, subject)
}

func hrActor() domain.Actor {
	return domain.Actor{ID: "hr-1", Roles: []domain.Role{domain.RoleHR}}
}

func adminActor() domain.Actor {
	return domain.Actor{ID: "admin-1", Roles: []domain.Role{domain.RoleAdmin}}
}

func superAdminActor() domain.Actor {
	return domain.Actor{ID: "root-1", Roles: []domain.Role{domain.RoleSuperAdmin}}
}

func directorActor() domain.Actor {
	return domain.Actor{ID: "dir-1", Roles: []domain.Role{domain.RoleDirector}}
}

func salesActor() domain.Actor {
	return domain.Actor{ID: "sales-1", Roles: []domain.Role{domain.RoleSales}}
}

func ptrF(v float64) *float64 { return &v }

// newValidator mirrors the wiring in main: custom validators must be
// registered before any struct using their tags is validated.
func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}
func ptrS(v string) *string   { return &v }

// Offer / contract state machine

func newOfferFixture(offerRepo *MockOfferRepo, candidateRepo *MockCandidateRepo, consultantRepo *MockConsultantRepo, ticketRepo *MockHrTicketRepo, committer *fakeCommitter, notifier *fakeNotifier) domain.OfferUsecase {
	return usecase.NewOfferUsecase(offerRepo, candidateRepo, consultantRepo, ticketRepo, committer, notifier, newValidator())
}

func TestOfferApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject approval from a non-pending state", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		committer := &fakeCommitter{}
		uc := newOfferFixture(offerRepo, new(MockCandidateRepo), new(MockConsultantRepo), new(MockHrTicketRepo), committer, &fakeNotifier{})

		for _, state := range []domain.OfferState{domain.OfferApproved, domain.OfferRejected, domain.OfferContractSent, domain.OfferWithdrawn, domain.OfferConverted} {
			offerRepo.ExpectedCalls = nil
			offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", Status: state, ApproverID: "hr-1"}, nil)

			_, err := uc.Approve(ctx, hrActor(), "offer-1")
			assert.Error(t, err)
			assert.True(t, apperror.IsConflict(err), "state %s should conflict", state)
		}
		assert.Empty(t, committer.committed)
	})

	t.Run("Should refuse an actor who is not the designated approver", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := newOfferFixture(offerRepo, new(MockCandidateRepo), new(MockConsultantRepo), new(MockHrTicketRepo), &fakeCommitter{}, &fakeNotifier{})

		offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", Status: domain.OfferPendingApproval, ApproverID: "someone-else"}, nil)

		_, err := uc.Approve(ctx, hrActor(), "offer-1")
		assert.True(t, apperror.IsPermission(err))
	})

	t.Run("Should let an approval override approve in place of the designated approver", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		committer := &fakeCommitter{}
		uc := newOfferFixture(offerRepo, new(MockCandidateRepo), new(MockConsultantRepo), new(MockHrTicketRepo), committer, &fakeNotifier{})

		offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", CandidateID: "cand-1", Status: domain.OfferPendingApproval, ApproverID: "someone-else"}, nil)

		offer, err := uc.Approve(ctx, adminActor(), "offer-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferApproved, offer.Status)

		// one commit carrying the offer update, candidate mirror and ticket insert
		cs := committer.last()
		assert.Len(t, cs.Updates, 2)
		assert.Len(t, cs.Inserts, 1)
		assert.Equal(t, domain.TableHrTickets, cs.Inserts[0].Table)
	})

	t.Run("Should require a rejection reason", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := newOfferFixture(offerRepo, new(MockCandidateRepo), new(MockConsultantRepo), new(MockHrTicketRepo), &fakeCommitter{}, &fakeNotifier{})

		_, err := uc.Reject(ctx, hrActor(), "offer-1", "")
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("Should mirror rejection onto the candidate and block later approval", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		committer := &fakeCommitter{}
		uc := newOfferFixture(offerRepo, new(MockCandidateRepo), new(MockConsultantRepo), new(MockHrTicketRepo), committer, &fakeNotifier{})

		offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", CandidateID: "cand-1", Status: domain.OfferPendingApproval, ApproverID: "hr-1"}, nil).Once()

		offer, err := uc.Reject(ctx, hrActor(), "offer-1", "budget freeze")
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferRejected, offer.Status)
		assert.Equal(t, "budget freeze", *offer.RejectionReason)

		cs := committer.last()
		assert.Equal(t, domain.TableCandidates, cs.Updates[1].Table)
		assert.Equal(t, domain.CandidateStatusOfferRejected, cs.Updates[1].Set["status"])

		offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", Status: domain.OfferRejected, ApproverID: "hr-1"}, nil).Once()
		_, err = uc.Approve(ctx, hrActor(), "offer-1")
		assert.True(t, apperror.IsConflict(err))
	})
}

func TestOfferCreation(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateOfferInput{
		CandidateID:   "5f0c1e9a-2f1b-4c3d-8e7f-6a5b4c3d2e1f",
		PositionTitle: "Backend Consultant",
		ApproverID:    "dir-1",
		AnnualSalary:  72000,
	}

	t.Run("Should block a second active offer for the same candidate", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		candidateRepo := new(MockCandidateRepo)
		uc := newOfferFixture(offerRepo, candidateRepo, new(MockConsultantRepo), new(MockHrTicketRepo), &fakeCommitter{}, &fakeNotifier{})

		candidateRepo.On("GetByID", ctx, input.CandidateID).Return(&domain.Candidate{ID: input.CandidateID}, nil)
		offerRepo.On("GetActiveByCandidate", ctx, input.CandidateID).Return(&domain.Offer{ID: "existing", Status: domain.OfferApproved}, nil)

		_, err := uc.Create(ctx, hrActor(), input)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("Should block offers for deleted candidates", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		candidateRepo := new(MockCandidateRepo)
		uc := newOfferFixture(offerRepo, candidateRepo, new(MockConsultantRepo), new(MockHrTicketRepo), &fakeCommitter{}, &fakeNotifier{})

		deletedAt := time.Now()
		candidateRepo.On("GetByID", ctx, input.CandidateID).Return(&domain.Candidate{ID: input.CandidateID, DeletedAt: &deletedAt}, nil)

		_, err := uc.Create(ctx, hrActor(), input)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("Should mirror offer_pending onto the candidate on creation", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		candidateRepo := new(MockCandidateRepo)
		committer := &fakeCommitter{}
		uc := newOfferFixture(offerRepo, candidateRepo, new(MockConsultantRepo), new(MockHrTicketRepo), committer, &fakeNotifier{})

		candidateRepo.On("GetByID", ctx, input.CandidateID).Return(&domain.Candidate{ID: input.CandidateID, FirstName: "Ada", LastName: "Lovelace"}, nil)
		offerRepo.On("GetActiveByCandidate", ctx, input.CandidateID).Return(nil, nil)

		offer, err := uc.Create(ctx, hrActor(), input)
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferPendingApproval, offer.Status)

		cs := committer.last()
		assert.Equal(t, domain.CandidateStatusOfferPending, cs.Updates[0].Set["status"])
	})
}

func TestContractSequence(t *testing.T) {
	ctx := context.Background()

	t.Run("Should enforce approved -> contract_sent -> contract_signed in order", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		ticketRepo := new(MockHrTicketRepo)
		uc := newOfferFixture(offerRepo, new(MockCandidateRepo), new(MockConsultantRepo), ticketRepo, &fakeCommitter{}, &fakeNotifier{})

		// signing before sending conflicts
		offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", Status: domain.OfferApproved}, nil).Once()
		_, err := uc.MarkContractSigned(ctx, hrActor(), "offer-1")
		assert.True(t, apperror.IsConflict(err))

		ticketRepo.On("GetOpenByOffer", ctx, "offer-1").Return(&domain.HrTicket{ID: "ticket-1", Status: domain.TicketPending}, nil)

		offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", CandidateID: "cand-1", Status: domain.OfferApproved}, nil).Once()
		sent, err := uc.MarkContractSent(ctx, hrActor(), "offer-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferContractSent, sent.Status)

		offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", CandidateID: "cand-1", Status: domain.OfferContractSent}, nil).Once()
		signed, err := uc.MarkContractSigned(ctx, hrActor(), "offer-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferContractSigned, signed.Status)
	})

	t.Run("Should cancel the open HR ticket on withdrawal", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		ticketRepo := new(MockHrTicketRepo)
		committer := &fakeCommitter{}
		uc := newOfferFixture(offerRepo, new(MockCandidateRepo), new(MockConsultantRepo), ticketRepo, committer, &fakeNotifier{})

		offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", CandidateID: "cand-1", Status: domain.OfferApproved}, nil)
		ticketRepo.On("GetOpenByOffer", ctx, "offer-1").Return(&domain.HrTicket{ID: "ticket-1", Status: domain.TicketPending}, nil)

		offer, err := uc.Withdraw(ctx, hrActor(), "offer-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferWithdrawn, offer.Status)

		cs := committer.last()
		assert.Len(t, cs.Updates, 3)
		assert.Equal(t, domain.TableHrTickets, cs.Updates[2].Table)
		assert.Equal(t, domain.TicketCancelled, cs.Updates[2].Set["status"])
	})
}

func TestConvertToConsultant(t *testing.T) {
	ctx := context.Background()

	t.Run("Should convert a signed offer exactly once", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		candidateRepo := new(MockCandidateRepo)
		consultantRepo := new(MockConsultantRepo)
		ticketRepo := new(MockHrTicketRepo)
		committer := &fakeCommitter{}
		uc := newOfferFixture(offerRepo, candidateRepo, consultantRepo, ticketRepo, committer, &fakeNotifier{})

		offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", CandidateID: "cand-1", Status: domain.OfferContractSigned, AnnualSalary: 72000, DailyRate: 650}, nil)
		consultantRepo.On("ExistsForCandidate", ctx, "cand-1").Return(false, nil).Once()
		candidateRepo.On("GetByID", ctx, "cand-1").Return(&domain.Candidate{ID: "cand-1", FirstName: "Ada", LastName: "Lovelace"}, nil)
		ticketRepo.On("GetOpenByOffer", ctx, "offer-1").Return(&domain.HrTicket{ID: "ticket-1", Status: domain.TicketContractSigned}, nil)

		consultant, err := uc.ConvertToConsultant(ctx, hrActor(), "offer-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.ConsultantBench, consultant.Status)
		assert.Equal(t, 72000.0, consultant.AnnualSalary)

		cs := committer.last()
		assert.Equal(t, domain.TableConsultants, cs.Inserts[0].Table)
		assert.Equal(t, domain.TicketCompleted, cs.Updates[2].Set["status"])

		// second attempt: a consultant already exists
		consultantRepo.On("ExistsForCandidate", ctx, "cand-1").Return(true, nil).Once()
		_, err = uc.ConvertToConsultant(ctx, hrActor(), "offer-1")
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("Should refuse conversion before the contract is signed", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		uc := newOfferFixture(offerRepo, new(MockCandidateRepo), new(MockConsultantRepo), new(MockHrTicketRepo), &fakeCommitter{}, &fakeNotifier{})

		offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", Status: domain.OfferContractSent}, nil)

		_, err := uc.ConvertToConsultant(ctx, hrActor(), "offer-1")
		assert.True(t, apperror.IsConflict(err))
	})
}

// Requirement / bid state machine

func newRequirementFixture(reqRepo *MockRequirementRepo, projectRepo *MockProjectRepo, companyRepo *MockCompanyRepo, candidateRepo *MockCandidateRepo, consultantRepo *MockConsultantRepo, committer *fakeCommitter) domain.RequirementUsecase {
	return usecase.NewRequirementUsecase(reqRepo, projectRepo, companyRepo, candidateRepo, consultantRepo, committer, &fakeNotifier{}, newValidator())
}

func TestBidAdvancement(t *testing.T) {
	ctx := context.Background()

	bidReq := func(status domain.BidStatus) *domain.Requirement {
		return &domain.Requirement{
			ID:          "req-1",
			Title:       "Platform rebuild",
			CompanyID:   "comp-1",
			ProjectType: domain.ProjectTypeFixedPrice,
			Status:      domain.RequirementOpportunity,
			IsBid:       true,
			BidStatus:   &status,
		}
	}

	t.Run("Should only advance the bid forward", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), new(MockCompanyRepo), new(MockCandidateRepo), new(MockConsultantRepo), &fakeCommitter{})

		reqRepo.On("GetByID", ctx, "req-1").Return(bidReq(domain.BidSubmitted), nil)

		_, err := uc.AdvanceBid(ctx, salesActor(), "req-1", domain.BidProposal, "")
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("Should refuse to win without a winning candidate", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), new(MockCompanyRepo), new(MockCandidateRepo), new(MockConsultantRepo), &fakeCommitter{})

		reqRepo.On("GetByID", ctx, "req-1").Return(bidReq(domain.BidSubmitted), nil)

		_, err := uc.AdvanceBid(ctx, salesActor(), "req-1", domain.BidWon, "")
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("Should win the parent requirement atomically with the bid", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		candidateRepo := new(MockCandidateRepo)
		committer := &fakeCommitter{}
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), new(MockCompanyRepo), candidateRepo, new(MockConsultantRepo), committer)

		reqRepo.On("GetByID", ctx, "req-1").Return(bidReq(domain.BidSubmitted), nil)
		candidateRepo.On("GetByID", ctx, "cand-1").Return(&domain.Candidate{ID: "cand-1"}, nil)

		req, err := uc.AdvanceBid(ctx, salesActor(), "req-1", domain.BidWon, "cand-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.RequirementWon, req.Status)
		assert.Equal(t, "cand-1", *req.WinningCandidateID)

		cs := committer.last()
		assert.Len(t, cs.Updates, 1)
		assert.Equal(t, "bid_status", cs.Updates[0].GuardColumn)
		assert.Equal(t, string(domain.BidSubmitted), cs.Updates[0].ExpectedStatus)
		assert.Equal(t, domain.RequirementWon, cs.Updates[0].Set["status"])
	})

	t.Run("Should refuse any transition from a terminal bid", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), new(MockCompanyRepo), new(MockCandidateRepo), new(MockConsultantRepo), &fakeCommitter{})

		reqRepo.On("GetByID", ctx, "req-1").Return(bidReq(domain.BidLost), nil)

		_, err := uc.AdvanceBid(ctx, salesActor(), "req-1", domain.BidWon, "cand-1")
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("Should refuse scoring with no filled dimensions", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), new(MockCompanyRepo), new(MockCandidateRepo), new(MockConsultantRepo), &fakeCommitter{})

		reqRepo.On("GetByID", ctx, "req-1").Return(bidReq(domain.BidQualifying), nil)

		_, err := uc.ScoreBid(ctx, salesActor(), "req-1", domain.BidScorecard{})
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, err.Error(), "Insufficient data")
	})

	t.Run("Should average only the filled dimensions", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		committer := &fakeCommitter{}
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), new(MockCompanyRepo), new(MockCandidateRepo), new(MockConsultantRepo), committer)

		reqRepo.On("GetByID", ctx, "req-1").Return(bidReq(domain.BidQualifying), nil)

		score, err := uc.ScoreBid(ctx, salesActor(), "req-1", domain.BidScorecard{
			Metrics:  ptrF(4),
			Champion: ptrF(2),
		})
		assert.NoError(t, err)
		assert.Equal(t, 3.0, score)
	})

	t.Run("Should carry fractional dimension values through to storage", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		committer := &fakeCommitter{}
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), new(MockCompanyRepo), new(MockCandidateRepo), new(MockConsultantRepo), committer)

		reqRepo.On("GetByID", ctx, "req-1").Return(bidReq(domain.BidQualifying), nil)

		score, err := uc.ScoreBid(ctx, salesActor(), "req-1", domain.BidScorecard{
			Metrics:      ptrF(3.5),
			IdentifyPain: ptrF(2.5),
		})
		assert.NoError(t, err)
		assert.Equal(t, 3.0, score)

		cs := committer.last()
		assert.Len(t, cs.Updates, 1)
		assert.Equal(t, ptrF(3.5), cs.Updates[0].Set["sc_metrics"])
		assert.Equal(t, ptrF(2.5), cs.Updates[0].Set["sc_identify_pain"])
	})
}

func TestProjectCreation(t *testing.T) {
	ctx := context.Background()

	wonReq := func() *domain.Requirement {
		return &domain.Requirement{
			ID:                 "req-1",
			Title:              "Data platform",
			CompanyID:          "comp-sub",
			ProjectType:        domain.ProjectTypeTM,
			Status:             domain.RequirementWon,
			WinningCandidateID: ptrS("cand-1"),
		}
	}

	t.Run("Should check scoring on the parent for subsidiaries and name the parent", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		companyRepo := new(MockCompanyRepo)
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), companyRepo, new(MockCandidateRepo), new(MockConsultantRepo), &fakeCommitter{})

		reqRepo.On("GetByID", ctx, "req-1").Return(wonReq(), nil)
		companyRepo.On("GetByID", ctx, "comp-sub").Return(&domain.Company{ID: "comp-sub", Name: "Acme France", ParentID: ptrS("comp-parent")}, nil)
		companyRepo.On("GetByID", ctx, "comp-parent").Return(&domain.Company{ID: "comp-parent", Name: "Acme Group"}, nil)

		_, err := uc.CreateProject(ctx, directorActor(), "req-1")
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, err.Error(), "Acme Group")
		assert.Contains(t, err.Error(), "Acme France")
	})

	t.Run("Should surface a parent fetch failure as an external error, not missing scoring", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		companyRepo := new(MockCompanyRepo)
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), companyRepo, new(MockCandidateRepo), new(MockConsultantRepo), &fakeCommitter{})

		reqRepo.On("GetByID", ctx, "req-1").Return(wonReq(), nil)
		companyRepo.On("GetByID", ctx, "comp-sub").Return(&domain.Company{ID: "comp-sub", Name: "Acme France", ParentID: ptrS("comp-parent")}, nil)
		companyRepo.On("GetByID", ctx, "comp-parent").Return(nil, errors.New("registry timeout"))

		_, err := uc.CreateProject(ctx, directorActor(), "req-1")
		assert.Error(t, err)
		assert.False(t, apperror.IsValidation(err))
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusBadGateway, appErr.Code)
	})

	t.Run("Should create the project and back-link the requirement", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		companyRepo := new(MockCompanyRepo)
		committer := &fakeCommitter{}
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), companyRepo, new(MockCandidateRepo), new(MockConsultantRepo), committer)

		req := wonReq()
		req.CompanyID = "comp-1"
		reqRepo.On("GetByID", ctx, "req-1").Return(req, nil)
		companyRepo.On("GetByID", ctx, "comp-1").Return(&domain.Company{ID: "comp-1", Name: "Globex", FinancialScoring: ptrS("A")}, nil)

		project, err := uc.CreateProject(ctx, directorActor(), "req-1")
		assert.NoError(t, err)
		assert.Equal(t, "comp-1", project.CompanyID)
		assert.Equal(t, "req-1", project.RequirementID)

		cs := committer.last()
		assert.Equal(t, domain.TableProjects, cs.Inserts[0].Table)
		assert.Equal(t, project.ID, cs.Updates[0].Set["project_id"])
	})

	t.Run("Should refuse a second project for the same requirement", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), new(MockCompanyRepo), new(MockCandidateRepo), new(MockConsultantRepo), &fakeCommitter{})

		req := wonReq()
		req.ProjectID = ptrS("proj-1")
		reqRepo.On("GetByID", ctx, "req-1").Return(req, nil)

		_, err := uc.CreateProject(ctx, directorActor(), "req-1")
		assert.True(t, apperror.IsConflict(err))
	})
}

func TestMissionCreation(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateMissionInput{
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC),
		DailyRate: 700,
	}

	wonReq := func() *domain.Requirement {
		return &domain.Requirement{
			ID:                 "req-1",
			Title:              "Data platform",
			CompanyID:          "comp-1",
			ProjectType:        domain.ProjectTypeTM,
			Status:             domain.RequirementWon,
			WinningCandidateID: ptrS("cand-1"),
			ProjectID:          ptrS("proj-1"),
		}
	}

	t.Run("Should require a converted consultant for the winning candidate", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		consultantRepo := new(MockConsultantRepo)
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), new(MockCompanyRepo), new(MockCandidateRepo), consultantRepo, &fakeCommitter{})

		reqRepo.On("GetByID", ctx, "req-1").Return(wonReq(), nil)
		consultantRepo.On("GetByCandidateID", ctx, "cand-1").Return(nil, errors.New("no rows"))

		_, err := uc.CreateMission(ctx, adminActor(), "req-1", input)
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, err.Error(), "convert the candidate")
	})

	t.Run("Should fail with not found when the customer cannot be resolved", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		consultantRepo := new(MockConsultantRepo)
		companyRepo := new(MockCompanyRepo)
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), companyRepo, new(MockCandidateRepo), consultantRepo, &fakeCommitter{})

		req := wonReq()
		req.CompanyID = ""
		req.CustomerName = "Initech"
		reqRepo.On("GetByID", ctx, "req-1").Return(req, nil)
		consultantRepo.On("GetByCandidateID", ctx, "cand-1").Return(&domain.Consultant{ID: "cons-1", Status: domain.ConsultantBench}, nil)
		companyRepo.On("FindByName", ctx, "Initech").Return(nil, nil)

		_, err := uc.CreateMission(ctx, adminActor(), "req-1", input)
		assert.True(t, apperror.IsNotFound(err))
		assert.Contains(t, err.Error(), "Initech")
	})

	t.Run("Should staff the mission, deploy the consultant and fill the requirement", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		consultantRepo := new(MockConsultantRepo)
		companyRepo := new(MockCompanyRepo)
		committer := &fakeCommitter{}
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), companyRepo, new(MockCandidateRepo), consultantRepo, committer)

		reqRepo.On("GetByID", ctx, "req-1").Return(wonReq(), nil)
		consultantRepo.On("GetByCandidateID", ctx, "cand-1").Return(&domain.Consultant{ID: "cons-1", FirstName: "Ada", LastName: "Lovelace", Status: domain.ConsultantBench}, nil)
		companyRepo.On("GetByID", ctx, "comp-1").Return(&domain.Company{ID: "comp-1", Name: "Globex", FinancialScoring: ptrS("A")}, nil)

		mission, err := uc.CreateMission(ctx, adminActor(), "req-1", input)
		assert.NoError(t, err)
		assert.Equal(t, domain.MissionActive, mission.Status)
		assert.Equal(t, "cons-1", mission.ConsultantID)
		assert.Equal(t, "proj-1", mission.ProjectID)

		cs := committer.last()
		assert.Equal(t, domain.TableMissions, cs.Inserts[0].Table)
		assert.Equal(t, domain.ConsultantInMission, cs.Updates[0].Set["status"])
		assert.Equal(t, domain.RequirementFilled, cs.Updates[1].Set["status"])
	})

	t.Run("Should create the project transparently when none exists", func(t *testing.T) {
		reqRepo := new(MockRequirementRepo)
		consultantRepo := new(MockConsultantRepo)
		companyRepo := new(MockCompanyRepo)
		committer := &fakeCommitter{}
		uc := newRequirementFixture(reqRepo, new(MockProjectRepo), companyRepo, new(MockCandidateRepo), consultantRepo, committer)

		req := wonReq()
		req.ProjectID = nil
		reqRepo.On("GetByID", ctx, "req-1").Return(req, nil)
		consultantRepo.On("GetByCandidateID", ctx, "cand-1").Return(&domain.Consultant{ID: "cons-1", Status: domain.ConsultantBench}, nil)
		companyRepo.On("GetByID", ctx, "comp-1").Return(&domain.Company{ID: "comp-1", Name: "Globex", FinancialScoring: ptrS("A")}, nil)

		mission, err := uc.CreateMission(ctx, adminActor(), "req-1", input)
		assert.NoError(t, err)
		assert.NotEmpty(t, mission.ProjectID)

		cs := committer.last()
		assert.Len(t, cs.Inserts, 2)
		assert.Equal(t, domain.TableProjects, cs.Inserts[0].Table)
	})

	t.Run("Should reject an end date before the start date", func(t *testing.T) {
		uc := newRequirementFixture(new(MockRequirementRepo), new(MockProjectRepo), new(MockCompanyRepo), new(MockCandidateRepo), new(MockConsultantRepo), &fakeCommitter{})

		bad := input
		bad.EndDate = input.StartDate.AddDate(0, -1, 0)
		_, err := uc.CreateMission(ctx, adminActor(), "req-1", bad)
		assert.True(t, apperror.IsValidation(err))
	})
}

// Mission lifecycle

func TestMissionLifecycle(t *testing.T) {
	ctx := context.Background()

	activeMission := func(id, consultantID string) *domain.Mission {
		return &domain.Mission{
			ID:           id,
			ConsultantID: consultantID,
			Status:       domain.MissionActive,
			StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("Should bench the consultant when their only active mission completes", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		consultantRepo := new(MockConsultantRepo)
		committer := &fakeCommitter{}
		uc := usecase.NewMissionUsecase(missionRepo, consultantRepo, committer)

		missionRepo.On("GetByID", ctx, "m-1").Return(activeMission("m-1", "cons-1"), nil)
		consultantRepo.On("GetByID", ctx, "cons-1").Return(&domain.Consultant{ID: "cons-1", Status: domain.ConsultantInMission}, nil)
		missionRepo.On("ListByConsultant", ctx, "cons-1").Return([]domain.Mission{*activeMission("m-1", "cons-1")}, nil)

		mission, err := uc.Complete(ctx, adminActor(), "m-1", time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.Equal(t, domain.MissionCompleted, mission.Status)

		cs := committer.last()
		assert.Len(t, cs.Updates, 2)
		assert.Equal(t, domain.ConsultantBench, cs.Updates[1].Set["status"])
	})

	t.Run("Should keep the consultant in mission while another active mission remains", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		consultantRepo := new(MockConsultantRepo)
		committer := &fakeCommitter{}
		uc := usecase.NewMissionUsecase(missionRepo, consultantRepo, committer)

		missionRepo.On("GetByID", ctx, "m-1").Return(activeMission("m-1", "cons-1"), nil)
		consultantRepo.On("GetByID", ctx, "cons-1").Return(&domain.Consultant{ID: "cons-1", Status: domain.ConsultantInMission}, nil)
		missionRepo.On("ListByConsultant", ctx, "cons-1").Return([]domain.Mission{
			*activeMission("m-1", "cons-1"),
			*activeMission("m-2", "cons-1"),
		}, nil)

		_, err := uc.Complete(ctx, adminActor(), "m-1", time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, err)

		cs := committer.last()
		assert.Len(t, cs.Updates, 1, "no consultant update expected")
	})

	t.Run("Should reject completion with an end date before the start", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		uc := usecase.NewMissionUsecase(missionRepo, new(MockConsultantRepo), &fakeCommitter{})

		missionRepo.On("GetByID", ctx, "m-1").Return(activeMission("m-1", "cons-1"), nil)

		_, err := uc.Complete(ctx, adminActor(), "m-1", time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("Should limit non-admin edits to end date and notes", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		uc := usecase.NewMissionUsecase(missionRepo, new(MockConsultantRepo), &fakeCommitter{})

		missionRepo.On("GetByID", ctx, "m-1").Return(activeMission("m-1", "cons-1"), nil)

		manager := domain.Actor{ID: "mgr-1", Roles: []domain.Role{domain.RoleManager}}
		newRate := 900.0
		_, err := uc.Update(ctx, manager, "m-1", domain.UpdateMissionInput{DailyRate: &newRate})
		assert.True(t, apperror.IsPermission(err))
	})

	t.Run("Should only reopen completed missions, and only for admins", func(t *testing.T) {
		missionRepo := new(MockMissionRepo)
		committer := &fakeCommitter{}
		uc := usecase.NewMissionUsecase(missionRepo, new(MockConsultantRepo), committer)

		manager := domain.Actor{ID: "mgr-1", Roles: []domain.Role{domain.RoleManager}}
		_, err := uc.Reopen(ctx, manager, "m-1")
		assert.True(t, apperror.IsPermission(err))

		completed := activeMission("m-1", "cons-1")
		completed.Status = domain.MissionCompleted
		missionRepo.On("GetByID", ctx, "m-1").Return(completed, nil)

		mission, err := uc.Reopen(ctx, adminActor(), "m-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.MissionActive, mission.Status)

		cs := committer.last()
		assert.Equal(t, domain.ConsultantInMission, cs.Updates[1].Set["status"])
	})
}

// Approval chain

func TestApprovalChain(t *testing.T) {
	ctx := context.Background()

	newFixture := func() (*MockApprovalRepo, *MockConsultantRepo, *fakeCommitter, domain.ApprovalUsecase) {
		approvalRepo := new(MockApprovalRepo)
		consultantRepo := new(MockConsultantRepo)
		committer := &fakeCommitter{}
		uc := usecase.NewApprovalUsecase(approvalRepo, consultantRepo, committer, &fakeNotifier{})
		return approvalRepo, consultantRepo, committer, uc
	}

	t.Run("Should route director approval to HR without applying the payload", func(t *testing.T) {
		approvalRepo, _, committer, uc := newFixture()

		approvalRepo.On("GetByID", ctx, "ar-1").Return(&domain.ApprovalRequest{
			ID: "ar-1", ConsultantID: "cons-1", RequestType: domain.RequestSalaryIncrease,
			Status: domain.ApprovalPendingDirector, Payload: domain.ApprovalPayload{NewSalary: ptrF(85000)},
		}, nil)

		req, err := uc.DirectorApprove(ctx, directorActor(), "ar-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApprovalPendingHR, req.Status)

		cs := committer.last()
		assert.Len(t, cs.Updates, 1, "only the request status moves at director stage")
	})

	t.Run("Should apply the salary payload atomically on HR approval", func(t *testing.T) {
		approvalRepo, consultantRepo, committer, uc := newFixture()

		approvalRepo.On("GetByID", ctx, "ar-1").Return(&domain.ApprovalRequest{
			ID: "ar-1", ConsultantID: "cons-1", RequestType: domain.RequestSalaryIncrease,
			Status: domain.ApprovalPendingHR, Payload: domain.ApprovalPayload{NewSalary: ptrF(85000)},
		}, nil)
		consultantRepo.On("GetByID", ctx, "cons-1").Return(&domain.Consultant{ID: "cons-1", FirstName: "Ada", LastName: "Lovelace", AnnualSalary: 72000}, nil)

		req, err := uc.HRApprove(ctx, hrActor(), "ar-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApprovalApproved, req.Status)

		cs := committer.last()
		assert.Len(t, cs.Updates, 2)
		assert.Equal(t, domain.TableConsultants, cs.Updates[1].Table)
		assert.Equal(t, 85000.0, cs.Updates[1].Set["annual_salary"])
	})

	t.Run("Should refuse to apply a request whose stored payload is empty", func(t *testing.T) {
		approvalRepo, _, committer, uc := newFixture()

		// e.g. request_data corrupted or written outside Submit
		approvalRepo.On("GetByID", ctx, "ar-1").Return(&domain.ApprovalRequest{
			ID: "ar-1", ConsultantID: "cons-1", RequestType: domain.RequestSalaryIncrease,
			Status: domain.ApprovalPendingHR, Payload: domain.ApprovalPayload{},
		}, nil)

		var err error
		assert.NotPanics(t, func() {
			_, err = uc.HRApprove(ctx, hrActor(), "ar-1")
		})
		assert.True(t, apperror.IsValidation(err))
		assert.Empty(t, committer.committed, "nothing may be committed for a malformed payload")
	})

	t.Run("Should terminate the consultant on exit approval", func(t *testing.T) {
		approvalRepo, consultantRepo, committer, uc := newFixture()

		approvalRepo.On("GetByID", ctx, "ar-1").Return(&domain.ApprovalRequest{
			ID: "ar-1", ConsultantID: "cons-1", RequestType: domain.RequestEmployeeExit,
			Status: domain.ApprovalPendingHR, Payload: domain.ApprovalPayload{ExitReason: ptrS("resignation")},
		}, nil)
		consultantRepo.On("GetByID", ctx, "cons-1").Return(&domain.Consultant{ID: "cons-1", Status: domain.ConsultantBench}, nil)

		_, err := uc.HRApprove(ctx, hrActor(), "ar-1")
		assert.NoError(t, err)

		cs := committer.last()
		effect := cs.Updates[1].Set
		assert.Equal(t, domain.ConsultantTerminated, effect["status"])
		assert.Equal(t, "resignation", effect["exit_reason"])
		assert.NotNil(t, effect["exited_at"])
	})

	t.Run("Should enforce the stage order", func(t *testing.T) {
		approvalRepo, _, _, uc := newFixture()

		// HR cannot approve while the request is still pending director
		approvalRepo.On("GetByID", ctx, "ar-1").Return(&domain.ApprovalRequest{
			ID: "ar-1", Status: domain.ApprovalPendingDirector, RequestType: domain.RequestBonusPayment,
			Payload: domain.ApprovalPayload{Amount: ptrF(2000)},
		}, nil).Once()
		_, err := uc.HRApprove(ctx, hrActor(), "ar-1")
		assert.True(t, apperror.IsConflict(err))

		// a director cannot approve twice
		approvalRepo.On("GetByID", ctx, "ar-1").Return(&domain.ApprovalRequest{
			ID: "ar-1", Status: domain.ApprovalPendingHR, RequestType: domain.RequestBonusPayment,
			Payload: domain.ApprovalPayload{Amount: ptrF(2000)},
		}, nil).Once()
		_, err = uc.DirectorApprove(ctx, directorActor(), "ar-1")
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("Should require a reason and the matching role for rejection", func(t *testing.T) {
		approvalRepo, _, _, uc := newFixture()

		_, err := uc.Reject(ctx, directorActor(), "ar-1", "")
		assert.True(t, apperror.IsValidation(err))

		approvalRepo.On("GetByID", ctx, "ar-1").Return(&domain.ApprovalRequest{
			ID: "ar-1", Status: domain.ApprovalPendingHR, RequestType: domain.RequestBonusPayment,
		}, nil).Once()
		_, err = uc.Reject(ctx, directorActor(), "ar-1", "not justified")
		assert.True(t, apperror.IsPermission(err), "director cannot reject at the HR stage")

		approvalRepo.On("GetByID", ctx, "ar-1").Return(&domain.ApprovalRequest{
			ID: "ar-1", Status: domain.ApprovalRejected, RequestType: domain.RequestBonusPayment,
		}, nil).Once()
		_, err = uc.Reject(ctx, hrActor(), "ar-1", "already settled")
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("Should validate the payload against the request type", func(t *testing.T) {
		_, consultantRepo, _, uc := newFixture()
		_ = consultantRepo

		_, err := uc.Submit(ctx, adminActor(), "cons-1", domain.RequestSalaryIncrease, domain.ApprovalPayload{})
		assert.True(t, apperror.IsValidation(err))

		_, err = uc.Submit(ctx, adminActor(), "cons-1", "sabbatical", domain.ApprovalPayload{})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("Should refuse requests against terminated consultants", func(t *testing.T) {
		_, consultantRepo, _, uc := newFixture()

		consultantRepo.On("GetByID", ctx, "cons-1").Return(&domain.Consultant{ID: "cons-1", Status: domain.ConsultantTerminated}, nil)

		_, err := uc.Submit(ctx, adminActor(), "cons-1", domain.RequestBonusPayment, domain.ApprovalPayload{Amount: ptrF(1500)})
		assert.True(t, apperror.IsConflict(err))
	})
}

// Candidate pipeline operations

func TestCandidateCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should accept a valid candidate", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockInterviewRepo), nil, newValidator())

		candidateRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Candidate) bool {
			return c.FirstName == "Ada" && c.LastName == "Lovelace"
		})).Return(nil)

		var candidate *domain.Candidate
		var err error
		assert.NotPanics(t, func() {
			candidate, err = uc.Create(ctx, hrActor(), domain.CreateCandidateInput{
				FirstName: "Ada",
				LastName:  "Lovelace",
			})
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, candidate.ID)
	})

	t.Run("Should reject a name with invalid characters", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), new(MockInterviewRepo), nil, newValidator())

		_, err := uc.Create(ctx, hrActor(), domain.CreateCandidateInput{
			FirstName: "Ada",
			LastName:  "L0v3lac3!",
		})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("Should reject a malformed phone number", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), new(MockInterviewRepo), nil, newValidator())

		_, err := uc.Create(ctx, hrActor(), domain.CreateCandidateInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Phone:     "not-a-number",
		})
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestCandidatePermissions(t *testing.T) {
	ctx := context.Background()

	t.Run("Should let only superadmins hard delete", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockInterviewRepo), nil, newValidator())

		err := uc.HardDelete(ctx, adminActor(), "cand-1")
		assert.True(t, apperror.IsPermission(err))

		candidateRepo.On("GetByID", ctx, "cand-1").Return(&domain.Candidate{ID: "cand-1"}, nil)
		candidateRepo.On("HardDelete", ctx, "cand-1").Return(nil)
		err = uc.HardDelete(ctx, superAdminActor(), "cand-1")
		assert.NoError(t, err)
	})

	t.Run("Should hide deleted candidates from actors without the delete capability", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), new(MockInterviewRepo), nil, newValidator())

		recruiter := domain.Actor{ID: "rec-1", Roles: []domain.Role{domain.RoleRecruiter}}
		_, err := uc.List(ctx, recruiter, domain.CandidateFilter{IncludeDeleted: true})
		assert.True(t, apperror.IsPermission(err))
	})

	t.Run("Should refuse scheduling once the candidate left the pipeline", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockInterviewRepo), nil, newValidator())

		candidateRepo.On("GetByID", ctx, "cand-1").Return(&domain.Candidate{ID: "cand-1", Status: domain.CandidateStatusOfferPending}, nil)

		_, err := uc.ScheduleInterview(ctx, hrActor(), "cand-1", domain.StageTechnicalInterview, time.Now().Add(24*time.Hour))
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("Should refuse rewriting a decided interview outcome", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), interviewRepo, nil, newValidator())

		interviewRepo.On("GetByID", ctx, "iv-1").Return(&domain.Interview{ID: "iv-1", Outcome: domain.OutcomePass}, nil)

		_, err := uc.RecordInterviewOutcome(ctx, hrActor(), "iv-1", domain.OutcomeFail)
		assert.True(t, apperror.IsConflict(err))
	})
}

func TestCVImport(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create a candidate from parsed resume text", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockInterviewRepo), nil, newValidator())

		candidateRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Candidate) bool {
			return c.FirstName == "Grace" && c.LastName == "Hopper" && c.Email == "grace.hopper@example.com"
		})).Return(nil)

		cv := "Grace Hopper\ngrace.hopper@example.com\n+1 555 010 2030\n10 years of experience\nSkills: Go, PostgreSQL, Docker\n"
		candidate, err := uc.ImportFromCV(ctx, hrActor(), cv)
		assert.NoError(t, err)
		assert.Contains(t, candidate.Skills, "Go")
		assert.Equal(t, 10, candidate.YearsExperience)
	})

	t.Run("Should fail when no name can be extracted", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), new(MockInterviewRepo), nil, newValidator())

		_, err := uc.ImportFromCV(ctx, hrActor(), "skills: go, sql\n10 years experience")
		assert.True(t, apperror.IsValidation(err))
	})
}

// Report export

func TestRosterExport(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require the export capability", func(t *testing.T) {
		uc := usecase.NewReportUsecase(new(MockConsultantRepo), new(MockMissionRepo))

		_, _, err := uc.ExportConsultantRoster(ctx, salesActor())
		assert.True(t, apperror.IsPermission(err))
	})

	t.Run("Should produce an xlsx file with one row per consultant", func(t *testing.T) {
		consultantRepo := new(MockConsultantRepo)
		missionRepo := new(MockMissionRepo)
		uc := usecase.NewReportUsecase(consultantRepo, missionRepo)

		consultantRepo.On("List", ctx, domain.ConsultantStatus("")).Return([]domain.Consultant{
			{ID: "cons-1", FirstName: "Ada", LastName: "Lovelace", Status: domain.ConsultantInMission, AnnualSalary: 72000, DailyRate: 650, HiredAt: time.Now()},
		}, nil)
		missionRepo.On("ListByConsultant", ctx, "cons-1").Return([]domain.Mission{{ID: "m-1", Status: domain.MissionActive}}, nil)

		data, filename, err := uc.ExportConsultantRoster(ctx, hrActor())
		assert.NoError(t, err)
		assert.NotEmpty(t, data)
		assert.Contains(t, filename, ".xlsx")
	})
}

// Commit failures propagate unchanged so the transport maps them

func TestCommitConflictPropagation(t *testing.T) {
	ctx := context.Background()

	offerRepo := new(MockOfferRepo)
	committer := &fakeCommitter{fail: apperror.Conflict("offer offer-1 moved since read")}
	uc := newOfferFixture(offerRepo, new(MockCandidateRepo), new(MockConsultantRepo), new(MockHrTicketRepo), committer, &fakeNotifier{})

	offerRepo.On("GetByID", ctx, "offer-1").Return(&domain.Offer{ID: "offer-1", CandidateID: "cand-1", Status: domain.OfferPendingApproval, ApproverID: "hr-1"}, nil)

	_, err := uc.Approve(ctx, hrActor(), "offer-1")
	assert.True(t, apperror.IsConflict(err))
}
