package consts

// 支持的媒体文件扩展名 -> MIME 类型

var ImageMimeTypes = map[string]string{
	".3fr":  "image/x-hasselblad-3fr",
	".ari":  "image/x-arriflex-ari",
	".arw":  "image/x-sony-arw",
	".avif": "image/avif",
	".cap":  "image/x-phaseone-cap",
	".cin":  "image/x-phantom-cin",
	".cr2":  "image/x-canon-cr2",
	".cr3":  "image/x-canon-cr3",
	".crw":  "image/x-canon-crw",
	".dcr":  "image/x-kodak-dcr",
	".dng":  "image/x-adobe-dng",
	".erf":  "image/x-epson-erf",
	".fff":  "image/x-hasselblad-fff",
	".gif":  "image/gif",
	".heic": "image/heic",
	".heif": "image/heif",
	".iiq":  "image/x-phaseone-iiq",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".jxl":  "image/jxl",
	".k25":  "image/x-kodak-k25",
	".kdc":  "image/x-kodak-kdc",
	".mrw":  "image/x-minolta-mrw",
	".nef":  "image/x-nikon-nef",
	".orf":  "image/x-olympus-orf",
	".ori":  "image/x-olympus-ori",
	".pef":  "image/x-pentax-pef",
	".png":  "image/png",
	".raf":  "image/x-fuji-raf",
	".raw":  "image/x-panasonic-raw",
	".rwl":  "image/x-leica-rwl",
	".sr2":  "image/x-sony-sr2",
	".srf":  "image/x-sony-srf",
	".srw":  "image/x-samsung-srw",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".x3f":  "image/x-sigma-x3f",
}

var VideoMimeTypes = map[string]string{
	".3gp":  "video/3gpp",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".m2ts": "video/mp2t",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp4":  "video/mp4",
	".mpg":  "video/mpeg",
	".mts":  "video/mp2t",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",
}

var SidecarMimeTypes = map[string]string{
	".xmp": "application/xml",
}
