package mocks

//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/rxtech-lab/argo-modular/internal/strategy EntrySignal,ExitSignal,PositionSizer,RiskGate
//go:generate mockgen -destination=./mock_commission.go -package=mocks github.com/rxtech-lab/argo-modular/internal/commission Fee
