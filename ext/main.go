package ext

import (
	"vgrab/ext/abc"
	"vgrab/ext/brightcove"
	"vgrab/ext/nbcu"
	"vgrab/ext/ninenow"
	"vgrab/ext/paramount"
	"vgrab/ext/vimeo"
	"vgrab/ext/weverse"
	"vgrab/ext/wrestleuniverse"
	"vgrab/models"
)

var List = []*models.Extractor{
	nbcu.BravoTVExtractor,
	nbcu.SyfyExtractor,
	paramount.NickExtractor,
	paramount.SouthParkExtractor,
	abc.Extractor,
	ninenow.Extractor,
	brightcove.Extractor,
	vimeo.Extractor,
	vimeo.AlbumExtractor,
	weverse.Extractor,
	weverse.HLSExtractor,
	wrestleuniverse.Extractor,
	wrestleuniverse.PPVExtractor,
}
