package contracts

type CellSerializer interface {
	MarshalKey(ref CellRef) []byte
	UnmarshalKey(key []byte) (CellRef, error)
	Marshal(ref CellRef, value string) []byte
	Unmarshal([]byte) (ref CellRef, value string, err error)
}
