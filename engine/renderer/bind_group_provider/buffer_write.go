package bind_group_provider

// BufferWrite is one queued upload: Data lands at Offset bytes into the buffer that Provider
// owns at Binding. Writes to a binding with no buffer are skipped.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
