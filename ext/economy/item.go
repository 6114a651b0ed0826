package economy

import (
	"fmt"

	"github.com/kursarscript/kspl/kspl"
)

// VirtualItem is a priced, ownable object in the virtual economy.
// Scripts read name, price, and owner; ownership changes through
// transfer_to or by assigning the owner property.
type VirtualItem struct {
	Name  string
	Price Credits
	Owner string
}

// NewVirtualItem creates an item.
func NewVirtualItem(name string, price Credits, owner string) *VirtualItem {
	return &VirtualItem{Name: name, Price: price, Owner: owner}
}

func (it *VirtualItem) String() string {
	return fmt.Sprintf("%s (%s) owned by %s", it.Name, FormatCredits(it.Price), it.Owner)
}

// TransferTo hands the item to a new owner.
func (it *VirtualItem) TransferTo(newOwner string) {
	it.Owner = newOwner
}

// TypeName implements kspl.HostValue.
func (it *VirtualItem) TypeName() string { return "VirtualItem" }

// Property implements kspl.HostValue.
func (it *VirtualItem) Property(name string) (kspl.Value, bool) {
	switch name {
	case "name":
		return kspl.NewString(it.Name), true
	case "price":
		return kspl.NewInt(int64(it.Price)), true
	case "owner":
		return kspl.NewString(it.Owner), true
	case "transfer_to":
		return kspl.NewBuiltin("VirtualItem.transfer_to", it.callTransferTo), true
	}
	return kspl.NewNull(), false
}

// SetProperty implements kspl.HostValue. Only the owner is writable.
func (it *VirtualItem) SetProperty(name string, val kspl.Value) bool {
	if name != "owner" || val.Kind() != kspl.KindString {
		return false
	}
	it.Owner = val.Text()
	return true
}

func (it *VirtualItem) callTransferTo(args []kspl.Value) (kspl.Value, error) {
	if len(args) != 1 || args[0].Kind() != kspl.KindString {
		return kspl.NewNull(), &kspl.TypeError{Message: "transfer_to expects an owner name"}
	}
	it.TransferTo(args[0].Text())
	return kspl.NewString(it.Owner), nil
}
