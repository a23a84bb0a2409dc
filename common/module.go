package common

type Module string

const (
	ModuleCrowdsale Module = "crowdsale"
)

func (m Module) String() string {
	return string(m)
}
