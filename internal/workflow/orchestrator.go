package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosha-health/ncp-engine/internal/allocation"
	"github.com/kosha-health/ncp-engine/internal/ayurveda"
	"github.com/kosha-health/ncp-engine/internal/diagnose"
	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/exchange"
	"github.com/kosha-health/ncp-engine/internal/food"
	"github.com/kosha-health/ncp-engine/internal/kb"
	"github.com/kosha-health/ncp-engine/internal/mealplan"
	"github.com/kosha-health/ncp-engine/internal/mnt"
	"github.com/kosha-health/ncp-engine/internal/store"
	"github.com/kosha-health/ncp-engine/internal/target"
)

// defaultPlanDays is how many days a generated plan covers when the
// caller does not say.
const defaultPlanDays = 7

// Options tunes orchestrator behavior.
type Options struct {
	// PlanDays is the plan horizon in days; 0 means defaultPlanDays.
	PlanDays int
	// DisabledTiers names food ranking tiers to switch off.
	DisabledTiers map[string]bool
}

// Orchestrator drives the decision pipeline: it sequences the engines,
// gates every stage boundary, persists each stage context, and advances
// the client lifecycle. Engines stay pure; all I/O lives here.
type Orchestrator struct {
	DB    *sql.DB
	KB    *kb.KB
	FSM   *FSM
	Gates *StageGateRegistry
	Log   *zap.Logger

	Assessments *store.AssessmentRepo
	Contexts    *store.ContextRepo
	Plans       *store.PlanRepo

	diagnose  *diagnose.Engine
	mnt       *mnt.Engine
	target    *target.Engine
	mealplan  *mealplan.Engine
	exchange  *exchange.Engine
	ayurveda  *ayurveda.Engine
	food      *food.Engine
	allocator *allocation.Allocator

	planDays int
}

// NewOrchestrator wires the engines over one database and knowledge base.
func NewOrchestrator(db *sql.DB, k *kb.KB, log *zap.Logger, opts Options) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	days := opts.PlanDays
	if days <= 0 {
		days = defaultPlanDays
	}
	return &Orchestrator{
		DB:          db,
		KB:          k,
		FSM:         NewFSM(db),
		Gates:       NewStageGateRegistry(),
		Log:         log,
		Assessments: &store.AssessmentRepo{},
		Contexts:    &store.ContextRepo{},
		Plans:       &store.PlanRepo{},
		diagnose:    diagnose.NewEngine(k),
		mnt:         mnt.NewEngine(k),
		target:      target.NewEngine(),
		mealplan:    mealplan.NewEngine(),
		exchange:    exchange.NewEngine(k),
		ayurveda:    ayurveda.NewEngine(k),
		food:        food.NewEngine(k, opts.DisabledTiers),
		allocator:   allocation.NewAllocator(),
		planDays:    days,
	}
}

// CreateClient registers a new client and returns its record.
func (o *Orchestrator) CreateClient(ctx context.Context, name string) (*domain.Client, error) {
	clientID := uuid.NewString()
	c, err := o.FSM.Register(ctx, clientID, name)
	if err != nil {
		return nil, err
	}
	o.Log.Info("client created", zap.String("client_id", clientID))
	return c, nil
}

// SubmitIntake opens a new assessment for the client, persists the intake
// snapshot, and moves the client to intake_completed.
func (o *Orchestrator) SubmitIntake(ctx context.Context, clientID string, intake domain.IntakeContext) (*domain.Assessment, error) {
	c, err := o.FSM.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !IsValidTransition(c.State, domain.StateIntakeCompleted) {
		return nil, domain.NewEngineError(
			domain.ErrInvalidTransition.Code,
			fmt.Sprintf("cannot submit intake while client is %s", c.State),
		)
	}

	now := time.Now().Unix()
	a := domain.Assessment{
		AssessmentID:  uuid.NewString(),
		ClientID:      clientID,
		CreatedAtUnix: now,
	}
	intake.AssessmentID = a.AssessmentID
	intake.ClientID = clientID

	if err := o.Gates.Check(StageIntake, intake); err != nil {
		return nil, err
	}

	tx, err := o.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := o.Assessments.CreateTx(ctx, tx, a); err != nil {
		return nil, err
	}
	if err := o.Contexts.SaveTx(ctx, tx, a.AssessmentID, StageIntake, intake, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	if _, err := o.FSM.Transition(ctx, clientID, domain.StateIntakeCompleted); err != nil {
		return nil, err
	}
	o.Log.Info("intake submitted",
		zap.String("client_id", clientID),
		zap.String("assessment_id", a.AssessmentID))
	return &a, nil
}

// RunDiagnosis evaluates the client's latest intake and persists the
// diagnosis context. The client moves to diagnosed.
func (o *Orchestrator) RunDiagnosis(ctx context.Context, clientID string) (*domain.DiagnosisContext, error) {
	c, err := o.FSM.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c.State != domain.StateIntakeCompleted {
		return nil, domain.NewEngineError(
			domain.ErrStageOutOfOrder.Code,
			fmt.Sprintf("diagnosis requires intake_completed, client is %s", c.State),
		)
	}

	a, err := o.Assessments.LatestForClient(ctx, o.DB, clientID)
	if err != nil {
		return nil, err
	}
	var intake domain.IntakeContext
	if err := o.Contexts.Load(ctx, o.DB, a.AssessmentID, StageIntake, &intake); err != nil {
		return nil, err
	}

	dc, err := o.diagnose.Diagnose(intake)
	if err != nil {
		return nil, err
	}
	if err := o.Gates.Check(StageDiagnosis, dc); err != nil {
		return nil, err
	}

	if err := o.saveContext(ctx, a.AssessmentID, StageDiagnosis, dc); err != nil {
		return nil, err
	}
	if _, err := o.FSM.Transition(ctx, clientID, domain.StateDiagnosed); err != nil {
		return nil, err
	}
	o.Log.Info("diagnosis complete",
		zap.String("client_id", clientID),
		zap.String("assessment_id", a.AssessmentID),
		zap.Int("diagnoses", len(dc.Diagnoses)))
	return &dc, nil
}

// GeneratePlan runs the full planning pipeline over the client's latest
// assessment, persists every intermediate stage context, versions and
// stores the resulting plan, and moves the client to plan_generated.
func (o *Orchestrator) GeneratePlan(ctx context.Context, clientID string) (*domain.InterventionContext, error) {
	c, err := o.FSM.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c.State != domain.StateDiagnosed && c.State != domain.StatePlanGenerated {
		return nil, domain.NewEngineError(
			domain.ErrStageOutOfOrder.Code,
			fmt.Sprintf("plan generation requires a diagnosed client, client is %s", c.State),
		)
	}

	a, err := o.Assessments.LatestForClient(ctx, o.DB, clientID)
	if err != nil {
		return nil, err
	}
	var intake domain.IntakeContext
	if err := o.Contexts.Load(ctx, o.DB, a.AssessmentID, StageIntake, &intake); err != nil {
		return nil, err
	}
	var diagnosis domain.DiagnosisContext
	if err := o.Contexts.Load(ctx, o.DB, a.AssessmentID, StageDiagnosis, &diagnosis); err != nil {
		return nil, err
	}

	plan, stages, err := o.buildPlan(intake, diagnosis)
	if err != nil {
		return nil, err
	}

	tx, err := o.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, s := range stages {
		if err := o.Contexts.SaveTx(ctx, tx, a.AssessmentID, s.stage, s.doc, now); err != nil {
			return nil, err
		}
	}

	version, err := o.Plans.NextVersionTx(ctx, tx, clientID)
	if err != nil {
		return nil, err
	}
	plan.PlanVersion = version
	if err := o.Gates.Check(StageIntervention, plan); err != nil {
		return nil, err
	}
	planID := uuid.NewString()
	if err := o.Plans.SaveTx(ctx, tx, planID, clientID, *plan, now); err != nil {
		return nil, err
	}
	if err := o.Contexts.SaveTx(ctx, tx, a.AssessmentID, StageIntervention, *plan, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	if c.State == domain.StateDiagnosed {
		if _, err := o.FSM.Transition(ctx, clientID, domain.StatePlanGenerated); err != nil {
			return nil, err
		}
	}
	for _, w := range plan.Warnings {
		o.Log.Warn("plan warning",
			zap.String("assessment_id", a.AssessmentID),
			zap.String("warning", w))
	}
	o.Log.Info("plan generated",
		zap.String("client_id", clientID),
		zap.String("assessment_id", a.AssessmentID),
		zap.Int("version", version),
		zap.Int("warnings", len(plan.Warnings)))
	return plan, nil
}

// stageDoc pairs a stage name with the context document to persist.
type stageDoc struct {
	stage string
	doc   any
}

// buildPlan runs the pure engine pipeline. Every stage output passes its
// gate before the next stage consumes it.
func (o *Orchestrator) buildPlan(intake domain.IntakeContext, diagnosis domain.DiagnosisContext) (*domain.InterventionContext, []stageDoc, error) {
	mntCtx, err := o.mnt.Process(diagnosis)
	if err != nil {
		return nil, nil, err
	}
	if err := o.Gates.Check(StageMNT, mntCtx); err != nil {
		return nil, nil, err
	}

	targetCtx, err := o.target.Compute(intake, mntCtx)
	if err != nil {
		return nil, nil, err
	}
	if err := o.Gates.Check(StageTarget, targetCtx); err != nil {
		return nil, nil, err
	}

	ayurCtx, err := o.ayurveda.Assess(intake, mntCtx)
	if err != nil {
		return nil, nil, err
	}
	if err := o.Gates.Check(StageAyurveda, ayurCtx); err != nil {
		return nil, nil, err
	}

	structure, err := o.mealplan.Build(intake, targetCtx)
	if err != nil {
		return nil, nil, err
	}
	if err := o.Gates.Check(StageMealStructure, structure); err != nil {
		return nil, nil, err
	}

	exCtx, err := o.exchange.Distribute(targetCtx, structure)
	if err != nil {
		return nil, nil, err
	}

	// One rebalance pass: if realized meal calories drifted from the
	// declared energy weights, adjust the weights and redistribute.
	mealCalories := make(map[string]float64, len(exCtx.MealNutrition))
	for name, n := range exCtx.MealNutrition {
		mealCalories[name] = n.Calories
	}
	if mealplan.RebalanceWeights(&structure, targetCtx.CaloriesTarget, mealCalories) {
		exCtx, err = o.exchange.Distribute(targetCtx, structure)
		if err != nil {
			return nil, nil, err
		}
	}
	if err := o.Gates.Check(StageExchange, exCtx); err != nil {
		return nil, nil, err
	}

	shortlist, err := o.food.Shortlist(food.RankContext{
		Diagnoses:   diagnosis.Diagnoses,
		MNT:         mntCtx,
		Ayurveda:    ayurCtx,
		Preferences: intake.Preferences,
	})
	if err != nil {
		return nil, nil, err
	}

	days, warnings, err := o.allocator.Plan(shortlist, exCtx, structure, o.planDays)
	if err != nil {
		return nil, nil, err
	}
	if !mealplan.ProteinSufficient(exCtx.DailyNutrition, targetCtx) {
		warnings = append(warnings, "daily protein falls short of the target minimum")
	}

	plan := &domain.InterventionContext{
		AssessmentID:        intake.AssessmentID,
		Days:                days,
		ConstraintsSnapshot: mntCtx,
		RuleIDsUsed:         mntCtx.RuleIDsUsed,
		Warnings:            warnings,
	}
	stages := []stageDoc{
		{StageMNT, mntCtx},
		{StageTarget, targetCtx},
		{StageAyurveda, ayurCtx},
		{StageMealStructure, structure},
		{StageExchange, exCtx},
	}
	return plan, stages, nil
}

// Activate moves a client with a generated plan into active monitoring.
func (o *Orchestrator) Activate(ctx context.Context, clientID string) (*domain.Client, error) {
	return o.FSM.Transition(ctx, clientID, domain.StateActiveMonitoring)
}

// GetClient returns a client record with its transition history.
func (o *Orchestrator) GetClient(ctx context.Context, clientID string) (*domain.Client, []domain.StateTransition, error) {
	c, err := o.FSM.Get(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	history, err := o.FSM.History(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	return c, history, nil
}

// LatestPlan returns the client's most recent plan.
func (o *Orchestrator) LatestPlan(ctx context.Context, clientID string) (*domain.InterventionContext, error) {
	return o.Plans.Latest(ctx, o.DB, clientID)
}

// PlanVersion returns one specific plan version for the client.
func (o *Orchestrator) PlanVersion(ctx context.Context, clientID string, version int) (*domain.InterventionContext, error) {
	return o.Plans.Version(ctx, o.DB, clientID, version)
}

// StageContext loads one persisted stage document for an assessment into
// out, for audit and debugging surfaces.
func (o *Orchestrator) StageContext(ctx context.Context, assessmentID, stage string, out any) error {
	return o.Contexts.Load(ctx, o.DB, assessmentID, stage, out)
}

func (o *Orchestrator) saveContext(ctx context.Context, assessmentID, stage string, doc any) error {
	tx, err := o.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	if err := o.Contexts.SaveTx(ctx, tx, assessmentID, stage, doc, time.Now().Unix()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
