package types

// CallKind distinguishes a call to a task from a call to a workflow.
type CallKind int

const (
	TaskCall CallKind = iota
	WorkflowCall
)

func (k CallKind) String() string {
	if k == WorkflowCall {
		return "workflow"
	}
	return "task"
}

// CallInput describes one declared input of a callable (task/workflow),
// carrying enough of its declaration to check call-site arguments.
type CallInput struct {
	Type     Type
	Required bool
}

// CallOutput describes one declared output of a callable.
type CallOutput struct {
	Type Type
}

// CallType represents the type of a `call` statement target. Each
// `call` statement constructs a *fresh* CallType instance; two
// structurally-identical calls are never Equal because enclosing
// scatter/conditional scopes promote each call's outputs independently,
// and a shared instance would let that promotion leak between them.
// This is implemented by giving CallType a pointer identity and
// comparing by pointer in Equal.
type CallType struct {
	Kind            CallKind
	Namespace       string // empty if unqualified
	Name            string
	SpecifiedInputs map[string]struct{}
	Inputs          *OrderedMap[CallInput]
	Outputs         *OrderedMap[CallOutput]
}

// NewCallType allocates a fresh CallType. Call sites must allocate a new
// instance per `call` statement, never reuse one.
func NewCallType(kind CallKind, namespace, name string, specified map[string]struct{}, inputs *OrderedMap[CallInput], outputs *OrderedMap[CallOutput]) *CallType {
	return &CallType{
		Kind:            kind,
		Namespace:       namespace,
		Name:            name,
		SpecifiedInputs: specified,
		Inputs:          inputs,
		Outputs:         outputs,
	}
}

func (c *CallType) String() string {
	if c.Namespace != "" {
		return "call to " + c.Kind.String() + " `" + c.Namespace + "." + c.Name + "`"
	}
	return "call to " + c.Kind.String() + " `" + c.Name + "`"
}

// Equal compares by identity: two constructed CallTypes are equal iff
// they are the same instance.
func (c *CallType) Equal(other Type) bool {
	o, ok := other.(*CallType)
	return ok && o == c
}

func (c *CallType) IsOptional() bool { return false }
func (c *CallType) Optional() Type   { return c }
func (c *CallType) Require() Type    { return c }

// IsCoercibleTo is always false: calls are not coercible to anything.
func (c *CallType) IsCoercibleTo(Type) bool { return false }

// Promote promotes a CallType's *outputs* individually into the parent
// scope, never the call type itself. It returns a fresh CallType so
// enclosing scopes never mutate a shared instance.
func (c *CallType) Promote(kind PromotionKind) *CallType {
	promotedOutputs := NewOrderedMap[CallOutput]()
	c.Outputs.Each(func(name string, out CallOutput) {
		promotedOutputs.Set(name, CallOutput{Type: Promote(out.Type, kind)})
	})
	return NewCallType(c.Kind, c.Namespace, c.Name, c.SpecifiedInputs, c.Inputs, promotedOutputs)
}
