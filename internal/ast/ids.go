package ast

type (
	// DeclID identifies a top-level or nested declaration node.
	DeclID uint32
	// StmtID identifies a statement node.
	StmtID uint32
	// ExprID identifies an expression node.
	ExprID uint32
	// TypeExprID identifies a type-expression node.
	TypeExprID uint32
	// PatternID identifies a pattern node.
	PatternID uint32
	// ParamID identifies a function parameter.
	ParamID uint32
	// FieldID identifies a struct field declaration.
	FieldID uint32
	// VariantID identifies an enum variant declaration.
	VariantID uint32
	// GenericParamID identifies a generic parameter declaration.
	GenericParamID uint32
	// ArmID identifies a match arm.
	ArmID uint32
)

const (
	NoDeclID         DeclID         = 0
	NoStmtID         StmtID         = 0
	NoExprID         ExprID         = 0
	NoTypeExprID     TypeExprID     = 0
	NoPatternID      PatternID      = 0
	NoParamID        ParamID        = 0
	NoFieldID        FieldID        = 0
	NoVariantID      VariantID      = 0
	NoGenericParamID GenericParamID = 0
	NoArmID          ArmID          = 0
)

func (id DeclID) IsValid() bool         { return id != NoDeclID }
func (id StmtID) IsValid() bool         { return id != NoStmtID }
func (id ExprID) IsValid() bool         { return id != NoExprID }
func (id TypeExprID) IsValid() bool     { return id != NoTypeExprID }
func (id PatternID) IsValid() bool      { return id != NoPatternID }
func (id ParamID) IsValid() bool        { return id != NoParamID }
func (id FieldID) IsValid() bool        { return id != NoFieldID }
func (id VariantID) IsValid() bool      { return id != NoVariantID }
func (id GenericParamID) IsValid() bool { return id != NoGenericParamID }
func (id ArmID) IsValid() bool          { return id != NoArmID }
