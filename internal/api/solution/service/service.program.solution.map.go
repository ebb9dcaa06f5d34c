package solutionsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "vidya_assessment/internal/api/base/models"
	basesvc "vidya_assessment/internal/api/base/service"
	solutionmodels "vidya_assessment/internal/api/solution/models"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/global"
)

// ProgramSolutionMapService answers the user targeting queries: which
// solutions and programs are rolled out to a role at a set of entities.
type ProgramSolutionMapService struct {
	*basesvc.BaseServiceMongoImpl[solutionmodels.ProgramSolutionMap]

	solutionService *SolutionService
	programService  *ProgramService
}

// NewProgramSolutionMapService creates the service from the registered
// collection and the solution/program services it resolves ids through.
func NewProgramSolutionMapService(solutionService *SolutionService, programService *ProgramService) (*ProgramSolutionMapService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ProgramSolutionMap)
	if !exist {
		return nil, fmt.Errorf("failed to get program solution map collection: %v", common.ErrNotFound)
	}

	return &ProgramSolutionMapService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[solutionmodels.ProgramSolutionMap](collection),
		solutionService:      solutionService,
		programService:       programService,
	}, nil
}

// BuildTargetedScopeFilter builds the scope match for targeting queries: the
// user's role code (or "all") must appear in the role codes and at least one
// of the user's entities in the scoped entities, on either the solution or
// the program side of the mapping.
func BuildTargetedScopeFilter(roleCode string, entityIDs []primitive.ObjectID) bson.M {
	roles := bson.M{"$in": []string{roleCode, solutionmodels.RoleAll}}
	return bson.M{
		"$or": []bson.M{
			{
				"scope.solutions.roles.code": roles,
				"scope.solutions.entities":   bson.M{"$in": entityIDs},
			},
			{
				"scope.programs.roles.code": roles,
				"scope.programs.entities":   bson.M{"$in": entityIDs},
			},
		},
	}
}

// TargetedSolutions lists the solutions rolled out to the given role and
// entities, optionally restricted by solution type/subType, with searchText
// and pagination applied to the resolved solutions. extraFilter values are
// merged into the final solution match.
func (s *ProgramSolutionMapService) TargetedSolutions(ctx context.Context, roleCode string, entityIDs []primitive.ObjectID, solutionType, subType, searchText string, extraFilter bson.M, page, limit int64) (*basemodels.PaginateResult[solutionmodels.Solution], error) {
	filter := BuildTargetedScopeFilter(roleCode, entityIDs)
	filter["isReusable"] = false
	if solutionType != "" {
		filter["solutionType"] = solutionType
	}
	if subType != "" {
		filter["solutionSubType"] = subType
	}

	ids, err := s.targetedSolutionIDs(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, common.ErrNotFound
	}

	return s.solutionService.SearchByIds(ctx, ids, searchText, extraFilter, page, limit)
}

// TargetedPrograms lists the programs rolled out to the given role and
// entities.
func (s *ProgramSolutionMapService) TargetedPrograms(ctx context.Context, roleCode string, entityIDs []primitive.ObjectID, searchText string, page, limit int64) (*basemodels.PaginateResult[solutionmodels.Program], error) {
	filter := BuildTargetedScopeFilter(roleCode, entityIDs)
	filter["isReusable"] = false

	values, err := s.Distinct(ctx, "programId", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, value := range values {
		if id, ok := value.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, common.ErrNotFound
	}

	return s.programService.SearchByIds(ctx, ids, searchText, page, limit)
}

// TargetedSolutionsByProgram lists the targeted solutions restricted to one
// program.
func (s *ProgramSolutionMapService) TargetedSolutionsByProgram(ctx context.Context, roleCode string, entityIDs []primitive.ObjectID, programID primitive.ObjectID, searchText string, page, limit int64) (*basemodels.PaginateResult[solutionmodels.Solution], error) {
	filter := BuildTargetedScopeFilter(roleCode, entityIDs)
	filter["programId"] = programID

	ids, err := s.targetedSolutionIDs(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, common.ErrNotFound
	}

	return s.solutionService.SearchByIds(ctx, ids, searchText, nil, page, limit)
}

// ProgramSolutionDetails returns the program and the full solution for one
// mapping, after verifying the mapping is targeted at the caller.
type ProgramSolutionDetails struct {
	Program  solutionmodels.Program  `json:"program"`
	Solution solutionmodels.Solution `json:"solution"`
}

// FindProgramSolutionDetails checks the caller is targeted by the
// program/solution pair and loads both documents.
func (s *ProgramSolutionMapService) FindProgramSolutionDetails(ctx context.Context, programID, solutionID primitive.ObjectID, roleCode string, entityIDs []primitive.ObjectID) (*ProgramSolutionDetails, error) {
	filter := BuildTargetedScopeFilter(roleCode, entityIDs)
	filter["programId"] = programID
	filter["solutionId"] = solutionID

	exists, err := s.DocumentExists(ctx, filter)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrNotFound
	}

	program, err := s.programService.FindActiveById(ctx, programID)
	if err != nil {
		return nil, err
	}

	solution, err := s.solutionService.FindOne(ctx, bson.M{
		"_id":       solutionID,
		"isDeleted": false,
		"status":    solutionmodels.StatusActive,
	}, nil)
	if err != nil {
		return nil, err
	}

	return &ProgramSolutionDetails{Program: program, Solution: solution}, nil
}

// targetedSolutionIDs resolves the solution ids behind matching mappings.
func (s *ProgramSolutionMapService) targetedSolutionIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "solutionId", Value: 1}})

	mappings, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(mappings))
	for _, mapping := range mappings {
		ids = append(ids, mapping.SolutionID)
	}
	return ids, nil
}
