package generator

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/zkrollup/fixturegen/witness"
)

// MockblockProducer is a mock of blockProducer interface.
type MockblockProducer struct {
	ctrl     *gomock.Controller
	recorder *MockblockProducerMockRecorder
}

// MockblockProducerMockRecorder is the mock recorder for MockblockProducer.
type MockblockProducerMockRecorder struct {
	mock *MockblockProducer
}

// NewMockblockProducer creates a new mock instance.
func NewMockblockProducer(ctrl *gomock.Controller) *MockblockProducer {
	mock := &MockblockProducer{ctrl: ctrl}
	mock.recorder = &MockblockProducerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockblockProducer) EXPECT() *MockblockProducerMockRecorder {
	return m.recorder
}

// Advance mocks base method.
func (m *MockblockProducer) Advance(isRegistrationBlock bool, reqs []witness.TxRequest) (*witness.ValidityWitness, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Advance", isRegistrationBlock, reqs)
	ret0, _ := ret[0].(*witness.ValidityWitness)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Advance indicates an expected call of Advance.
func (mr *MockblockProducerMockRecorder) Advance(isRegistrationBlock, reqs any) *MockblockProducerAdvanceCall {
	mr.mock.ctrl.T.Helper()
	call := mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Advance",
		reflect.TypeOf((*MockblockProducer)(nil).Advance), isRegistrationBlock, reqs)
	return &MockblockProducerAdvanceCall{Call: call}
}

// MockblockProducerAdvanceCall wrap *gomock.Call.
type MockblockProducerAdvanceCall struct {
	*gomock.Call
}

// Return rewrite *gomock.Call.Return.
func (c *MockblockProducerAdvanceCall) Return(arg0 *witness.ValidityWitness, arg1 error) *MockblockProducerAdvanceCall {
	c.Call = c.Call.Return(arg0, arg1)
	return c
}

// Do rewrite *gomock.Call.Do.
func (c *MockblockProducerAdvanceCall) Do(
	f func(bool, []witness.TxRequest) (*witness.ValidityWitness, error),
) *MockblockProducerAdvanceCall {
	c.Call = c.Call.Do(f)
	return c
}

// DoAndReturn rewrite *gomock.Call.DoAndReturn.
func (c *MockblockProducerAdvanceCall) DoAndReturn(
	f func(bool, []witness.TxRequest) (*witness.ValidityWitness, error),
) *MockblockProducerAdvanceCall {
	c.Call = c.Call.DoAndReturn(f)
	return c
}
