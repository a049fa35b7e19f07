package snapshot

import "hash/crc32"

var crc32IEEE = crc32.ChecksumIEEE
