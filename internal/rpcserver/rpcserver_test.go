package rpcserver

import "testing"

func TestNewServiceDescHasOneMethod(t *testing.T) {
	sd, err := NewServiceDesc()
	if err != nil {
		t.Fatalf("NewServiceDesc: %v", err)
	}
	if sd.ServiceName != ServiceName {
		t.Fatalf("ServiceName = %q, want %q", sd.ServiceName, ServiceName)
	}
	if len(sd.Methods) != 1 || sd.Methods[0].MethodName != "Convert" {
		t.Fatalf("Methods = %+v, want single Convert method", sd.Methods)
	}
}
