package mapengine

// Layer is one of TileLayer or VectorLayer. Layers are drawn in slice order,
// so the last layer is on top.
type Layer interface {
	layer()
}

// TileLayer draws raster tiles from a tile source.
type TileLayer struct {
	source *OSMSource
}

func NewTileLayer(source *OSMSource) *TileLayer {
	return &TileLayer{source: source}
}

func (l *TileLayer) Source() *OSMSource {
	return l.source
}

func (*TileLayer) layer() {}

// VectorLayer draws the features of a vector source.
type VectorLayer struct {
	source *VectorSource
}

func NewVectorLayer(source *VectorSource) *VectorLayer {
	return &VectorLayer{source: source}
}

func (l *VectorLayer) Source() *VectorSource {
	return l.source
}

func (*VectorLayer) layer() {}
