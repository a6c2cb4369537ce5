package radiob

// Radio-B addresses come in two flavors: radio addresses (what the
// handshake and block protocol speak on the wire) and file addresses
// (what a saved envelope indexes, shifted +8 for the identity header).
// Every helper here is explicit about which one it returns.

func channelRadioOffset(n int) int { return n * ChannelWidth }
func channelFileOffset(n int) int  { return IdentHeaderLen + channelRadioOffset(n) }

func nameRadioOffset(n int) int { return 0x1000 + n*ChannelWidth }
func nameFileOffset(n int) int  { return IdentHeaderLen + nameRadioOffset(n) }

func radioToFile(addr int) int { return addr + IdentHeaderLen }
func fileToRadio(addr int) int { return addr - IdentHeaderLen }
