package domain

import "testing"

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role     Role
		admin    bool
		canWrite bool
		valid    bool
	}{
		{RoleAdministrador, true, true, true},
		{Role("ADMIN"), true, true, false},
		{RoleOperador, false, true, true},
		{RoleVisualizador, false, false, true},
		{Role("administrador"), false, false, false},
		{Role(""), false, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.IsAdmin(); got != tt.admin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.admin)
			}
			if got := tt.role.CanWrite(); got != tt.canWrite {
				t.Errorf("CanWrite() = %v, want %v", got, tt.canWrite)
			}
			if got := tt.role.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestResgatePending(t *testing.T) {
	if !(Resgate{Status: ResgatePendente}).Pending() {
		t.Error("Pendente should be pending")
	}
	if (Resgate{Status: ResgateEntregue}).Pending() {
		t.Error("Entregue should not be pending")
	}
}

func TestEmptyTopClientesEncodesArrays(t *testing.T) {
	top := EmptyTopClientes()
	if top.TopPontos == nil || top.TopVisitas == nil {
		t.Fatal("EmptyTopClientes() returned nil slices")
	}
	if r := EmptyResumo(); r.EstatisticasGerais.TotalClientes != 0 || r.EstatisticasMes.ValorTotalMes != 0 {
		t.Errorf("EmptyResumo() = %+v, want zero values", r)
	}
}
